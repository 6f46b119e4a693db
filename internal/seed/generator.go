package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"medical-records-api/internal/domain"
	"medical-records-api/pkg/utils"
)

var (
	firstNames  = []string{"John", "Jane", "Michael", "Emily", "David", "Sarah", "Robert", "Lisa", "William", "Olivia"}
	lastNames   = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis", "Garcia", "Rodriguez", "Wilson"}
	reportTypes = []string{"Blood Test", "X-Ray", "ECG", "MRI", "CT Scan", "Ultrasound"}
)

// DoctorIDs 种子医生的固定 id，报告从中均匀抽取
var DoctorIDs = []string{"d1", "d2", "d3"}

const reportWindowDays = 30

// Generator 生成演示数据。同一个 Generator 不是并发安全的。
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

func NewGenerator(rnd *rand.Rand, now func() time.Time) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rnd, now: now}
}

// between 返回 [lo, hi] 闭区间内的整数
func (g *Generator) between(lo, hi int) int { return lo + g.rnd.IntN(hi-lo+1) }

func pick[T any](g *Generator, xs []T) T { return xs[g.rnd.IntN(len(xs))] }

// Age 18..67，注册患者也用它
func (g *Generator) Age() int { return g.between(18, 67) }

// Patients 姓名、邮箱可能重复，演示数据不做去重
func (g *Generator) Patients(count int) []domain.Patient {
	out := make([]domain.Patient, 0, count)
	for i := 0; i < count; i++ {
		first, last := pick(g, firstNames), pick(g, lastNames)
		out = append(out, domain.Patient{
			ID:            utils.NextID("p", i),
			Name:          first + " " + last,
			Age:           g.Age(),
			Email:         strings.ToLower(first) + "." + strings.ToLower(last) + "@example.com",
			Phone:         fmt.Sprintf("555-%d", g.between(1000, 9999)),
			Weight:        domain.IntVital(g.between(50, 99)),
			Height:        domain.IntVital(g.between(150, 199)),
			HeartRate:     domain.IntVital(g.between(60, 99)),
			BloodPressure: fmt.Sprintf("%d/%d", g.between(110, 149), g.between(70, 89)),
		})
	}
	return out
}

func (g *Generator) Doctors() []domain.Doctor {
	return []domain.Doctor{
		{ID: "d1", Name: "Dr. Meera Joshi", Specialization: "General Medicine", Email: "meera.joshi@example.com"},
		{ID: "d2", Name: "Dr. Raj Patel", Specialization: "Cardiology", Email: "raj.patel@example.com"},
		{ID: "d3", Name: "Dr. Sarah Wilson", Specialization: "Pediatrics", Email: "sarah.wilson@example.com"},
	}
}

// Reports 每个患者 1~3 份，日期落在最近 30 天内（UTC 日期）
func (g *Generator) Reports(patientIDs []string) []domain.Report {
	out := []domain.Report{}
	today := g.now().UTC()
	for _, pid := range patientIDs {
		n := g.between(1, 3)
		for i := 0; i < n; i++ {
			typ := pick(g, reportTypes)
			date := today.AddDate(0, 0, -g.rnd.IntN(reportWindowDays))
			out = append(out, domain.Report{
				ID:         utils.NextID("r", len(out)),
				PatientID:  pid,
				Type:       typ,
				Date:       date.Format(time.DateOnly),
				DoctorID:   pick(g, DoctorIDs),
				Findings:   fmt.Sprintf("Sample findings for %s. All values are within normal range.", typ),
				Impression: fmt.Sprintf("Normal %s results. No significant abnormalities detected.", typ),
			})
		}
	}
	return out
}
