package response

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medical-records-api/internal/domain"
)

func TestError(t *testing.T) {
	assert.Equal(t, ErrorBody{Error: "Not Found"}, Error(CodeNotFound, ""))
	assert.Equal(t, ErrorBody{Error: "Patient not found"}, Error(CodeNotFound, "Patient not found"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 400, StatusOf(domain.KindValidation))
	assert.Equal(t, 400, StatusOf(domain.KindConflict))
	assert.Equal(t, 401, StatusOf(domain.KindAuth))
	assert.Equal(t, 404, StatusOf(domain.KindNotFound))
	assert.Equal(t, 500, StatusOf(domain.KindStorage))
	assert.Equal(t, 500, StatusOf(domain.KindUnknown))
}
