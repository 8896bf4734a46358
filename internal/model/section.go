package model

// SectionInfo — отображаемые названия для секции курса.
type SectionInfo struct {
	SectionID    int64  `json:"section_id"`
	SubjectName  string `json:"subject_name"`
	ClassName    string `json:"class_name"`
	LecturerID   int64  `json:"lecturer_id"`
	LecturerName string `json:"lecturer_name"`
}
