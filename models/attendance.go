// models/attendance.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance statuses. "unmarked" is never stored; it is derived at read
// time from the absence of a record.
const (
	AttendancePresent  = "present"
	AttendanceAbsent   = "absent"
	AttendanceUnmarked = "unmarked"
)

// AttendanceDateLayout is the day-granularity key format
const AttendanceDateLayout = "2006-01-02"

var (
	ErrSelfMark      = errors.New("staff cannot mark their own attendance")
	ErrOutsideBranch = errors.New("staff member belongs to a different branch")
)

// AttendanceRecord stores one mark per (staffId, date). Marking the same
// pair again overwrites the record; last write wins.
type AttendanceRecord struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID   primitive.ObjectID `json:"staffId" bson:"staffId"`
	BranchID  primitive.ObjectID `json:"branchId" bson:"branchId"`
	Date      string             `json:"date" bson:"date"`
	Status    string             `json:"status" bson:"status"`
	MarkedBy  primitive.ObjectID `json:"markedBy" bson:"markedBy"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// MarkAttendanceRequest is the body for marking one staff member
type MarkAttendanceRequest struct {
	StaffID string `json:"staffId" validate:"required"`
	Date    string `json:"date,omitempty"`
	Status  string `json:"status" validate:"required,oneof=present absent"`
}

// BulkMarkEntry is one row of a bulk mark request
type BulkMarkEntry struct {
	StaffID string `json:"staffId" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=present absent"`
}

// BulkMarkRequest marks several staff members for one date
type BulkMarkRequest struct {
	Date    string          `json:"date,omitempty"`
	Records []BulkMarkEntry `json:"records" validate:"required,min=1,dive"`
}

// BulkMarkResult reports the outcome of one bulk entry. Failed entries do
// not abort the batch.
type BulkMarkResult struct {
	StaffID string            `json:"staffId"`
	OK      bool              `json:"ok"`
	Error   string            `json:"error,omitempty"`
	Record  *AttendanceRecord `json:"record,omitempty"`
}

// StaffAttendance pairs a staff member with their status for one date
type StaffAttendance struct {
	Staff      Staff  `json:"staff"`
	Attendance string `json:"attendance"`
}

// NormalizeAttendanceDate validates and canonicalizes a date string. An
// empty input defaults to today in the given location.
func NormalizeAttendanceDate(raw string, now time.Time) (string, error) {
	if raw == "" {
		return now.Format(AttendanceDateLayout), nil
	}
	parsed, err := time.Parse(AttendanceDateLayout, raw)
	if err != nil {
		return "", errors.New("date must be in YYYY-MM-DD format")
	}
	return parsed.Format(AttendanceDateLayout), nil
}

// AttendanceMarkable checks the branch-scoping and self-marking rules for
// one target staff member. callerStaffID is the staff identity of the
// receptionist performing the mark.
func AttendanceMarkable(target Staff, callerStaffID, callerBranchID primitive.ObjectID) error {
	if target.ID == callerStaffID {
		return ErrSelfMark
	}
	if target.BranchID != callerBranchID {
		return ErrOutsideBranch
	}
	return nil
}

// MergeAttendance joins the branch staff roster with the day's records,
// defaulting to unmarked where no record exists. The caller's own staff
// record is excluded from the result.
func MergeAttendance(staff []Staff, records []AttendanceRecord, callerStaffID primitive.ObjectID) []StaffAttendance {
	byStaff := make(map[primitive.ObjectID]string, len(records))
	for _, rec := range records {
		byStaff[rec.StaffID] = rec.Status
	}

	result := make([]StaffAttendance, 0, len(staff))
	for _, member := range staff {
		if member.ID == callerStaffID {
			continue
		}
		status, ok := byStaff[member.ID]
		if !ok {
			status = AttendanceUnmarked
		}
		result = append(result, StaffAttendance{Staff: member, Attendance: status})
	}
	return result
}
