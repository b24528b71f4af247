package models

import "time"

// Attendance statuses shared by student and teacher records.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusLeave   = "leave"
)

// StudentAttendance is a single day's attendance mark for a student.
type StudentAttendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	Remark    string    `gorm:"size:255" json:"remark"`
	CampusID  *uint     `gorm:"index" json:"campus_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeacherAttendance is a single day's attendance mark for a teacher.
type TeacherAttendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeacherID uint      `gorm:"index;not null" json:"teacher_id"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	Remark    string    `gorm:"size:255" json:"remark"`
	CampusID  *uint     `gorm:"index" json:"campus_id"`
	CreatedAt time.Time `json:"created_at"`
}
