package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"medical-records-api/internal/core/config"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{"driver dsn untouched", "root:pw@tcp(localhost:3306)/medrec", "", "", "root:pw@tcp(localhost:3306)/medrec"},
		{"url form", "mysql://root:pw@db:3306/medrec", "", "", "root:pw@tcp(db:3306)/medrec?charset=utf8mb4&parseTime=true"},
		{"jdbc prefix", "jdbc:mysql://db:3306/medrec?charset=latin1", "app", "", "app@tcp(db:3306)/medrec?charset=latin1&parseTime=true"},
		{"override credentials", "mysql://a:b@db/medrec", "root", "secret", "root:secret@tcp(db)/medrec?charset=utf8mb4&parseTime=true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(config.DB{Driver: "oracle"})
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))
}
