package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeAttendanceDate(t *testing.T) {
	now := time.Date(2025, 3, 15, 22, 30, 0, 0, time.UTC)

	t.Run("empty defaults to today", func(t *testing.T) {
		date, err := NormalizeAttendanceDate("", now)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-15", date)
	})

	t.Run("valid date passes through", func(t *testing.T) {
		date, err := NormalizeAttendanceDate("2025-01-02", now)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-02", date)
	})

	t.Run("rejects bad formats", func(t *testing.T) {
		for _, raw := range []string{"15-03-2025", "2025/03/15", "march 15", "2025-13-40"} {
			_, err := NormalizeAttendanceDate(raw, now)
			assert.Error(t, err, "input %q", raw)
		}
	})
}

func TestAttendanceMarkable(t *testing.T) {
	branchID := primitive.NewObjectID()
	otherBranchID := primitive.NewObjectID()
	receptionistID := primitive.NewObjectID()

	target := Staff{
		ID:       primitive.NewObjectID(),
		BranchID: branchID,
	}

	t.Run("same branch colleague", func(t *testing.T) {
		assert.NoError(t, AttendanceMarkable(target, receptionistID, branchID))
	})

	t.Run("self marking rejected", func(t *testing.T) {
		err := AttendanceMarkable(target, target.ID, branchID)
		assert.ErrorIs(t, err, ErrSelfMark)
	})

	t.Run("other branch rejected", func(t *testing.T) {
		err := AttendanceMarkable(target, receptionistID, otherBranchID)
		assert.ErrorIs(t, err, ErrOutsideBranch)
	})
}

func TestMergeAttendance(t *testing.T) {
	branchID := primitive.NewObjectID()
	receptionist := Staff{ID: primitive.NewObjectID(), Name: "Receptionist", BranchID: branchID}
	stylist := Staff{ID: primitive.NewObjectID(), Name: "Stylist", BranchID: branchID}
	beautician := Staff{ID: primitive.NewObjectID(), Name: "Beautician", BranchID: branchID}

	records := []AttendanceRecord{
		{StaffID: stylist.ID, Date: "2025-03-15", Status: AttendancePresent},
	}

	merged := MergeAttendance([]Staff{receptionist, stylist, beautician}, records, receptionist.ID)

	require.Len(t, merged, 2, "caller is excluded from the roster")

	byName := map[string]string{}
	for _, entry := range merged {
		byName[entry.Staff.Name] = entry.Attendance
	}
	assert.Equal(t, AttendancePresent, byName["Stylist"])
	assert.Equal(t, AttendanceUnmarked, byName["Beautician"], "missing record reads as unmarked")
	assert.NotContains(t, byName, "Receptionist")
}

func TestMergeAttendanceOwnerCaller(t *testing.T) {
	branchID := primitive.NewObjectID()
	stylist := Staff{ID: primitive.NewObjectID(), Name: "Stylist", BranchID: branchID}

	// owners have no staff record, so nobody is filtered out
	merged := MergeAttendance([]Staff{stylist}, nil, primitive.NilObjectID)
	require.Len(t, merged, 1)
	assert.Equal(t, AttendanceUnmarked, merged[0].Attendance)
}
