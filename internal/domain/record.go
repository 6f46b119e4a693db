package domain

// Patient 体征字段只有种子数据会填，注册生成的患者没有
type Patient struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Weight        Vital  `json:"weight,omitzero"`
	Height        Vital  `json:"height,omitzero"`
	HeartRate     Vital  `json:"heartRate,omitzero"`
	BloodPressure string `json:"bloodPressure,omitempty"` // "120/80"
	UserID        string `json:"userId,omitempty"`
}

type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
}

type Report struct {
	ID         string `json:"id"`
	PatientID  string `json:"patientId"`
	Type       string `json:"type"`
	Date       string `json:"date"` // YYYY-MM-DD
	DoctorID   string `json:"doctorId"`
	Findings   string `json:"findings"`
	Impression string `json:"impression"`
}
