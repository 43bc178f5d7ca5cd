package attendance

import (
	"testing"
	"time"

	"github.com/forher-hr/hr-backend-go/internal/domain/attendance"
	"github.com/forher-hr/hr-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func testDate() time.Time {
	return time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
}

func morningShift() shift.Template {
	return shift.Template{ID: "shift-morning", Name: "Morning", Code: "MOR", StartTime: 8.5, EndTime: 17.0}
}

func eveningShift() shift.Template {
	return shift.Template{ID: "shift-evening", Name: "Evening", Code: "EVE", StartTime: 18.0, EndTime: 22.0}
}

func assignmentFor(tpl shift.Template) shift.Assignment {
	return shift.Assignment{
		ID:      "asg-" + tpl.ID,
		ShiftID: tpl.ID,
		Date:    testDate(),
		Shift:   &tpl,
	}
}

func localTime(hour, min int) time.Time {
	return time.Date(2024, 3, 11, hour, min, 0, 0, wib).UTC()
}

func TestClassify_NoAssignments(t *testing.T) {
	t.Parallel()

	_, err := Classify(localTime(8, 0), nil, nil, wib, false, DefaultPolicy())
	assert.ErrorIs(t, err, attendance.ErrNoShiftAssigned)
}

func TestClassify_WithinGraceWindow(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}

	cls, err := Classify(localTime(8, 0), nil, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "shift-morning", cls.ShiftID)
	assert.False(t, cls.IsLate)
}

func TestClassify_BeforeGraceWindow(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}

	_, err := Classify(localTime(7, 59), nil, assignments, wib, false, DefaultPolicy())
	assert.ErrorIs(t, err, attendance.ErrOutsideShiftWindow)
}

func TestClassify_AfterShiftEnd(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}

	_, err := Classify(localTime(17, 1), nil, assignments, wib, false, DefaultPolicy())
	assert.ErrorIs(t, err, attendance.ErrOutsideShiftWindow)
}

func TestClassify_LateCheckIn(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}

	cls, err := Classify(localTime(9, 0), nil, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	assert.True(t, cls.IsLate)
}

func TestClassify_EarlyCheckOutClampsWorkedHours(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}
	out := localTime(16, 0)

	cls, err := Classify(localTime(9, 0), &out, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	assert.True(t, cls.IsEarly)
	assert.InDelta(t, 7.0, cls.WorkedHours, 1e-9)
	assert.Zero(t, cls.OvertimeNormalHours)
}

func TestClassify_OvertimeAfterShift(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}
	out := localTime(19, 0)

	cls, err := Classify(localTime(8, 0), &out, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	assert.False(t, cls.IsEarly)
	// Worked hours clamp to the 08:30-17:00 window.
	assert.InDelta(t, 8.5, cls.WorkedHours, 1e-9)
	assert.InDelta(t, 2.0, cls.OvertimeNormalHours, 1e-9)
	assert.Zero(t, cls.OvertimeHolidayHours)
}

func TestClassify_OvertimeOnHolidayGoesToHolidayBucket(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}
	out := localTime(19, 0)

	cls, err := Classify(localTime(8, 0), &out, assignments, wib, true, DefaultPolicy())
	require.NoError(t, err)
	assert.True(t, cls.IsHoliday)
	assert.Zero(t, cls.OvertimeNormalHours)
	assert.InDelta(t, 2.0, cls.OvertimeHolidayHours, 1e-9)
}

func TestClassify_OvertimeBeforeAndAfterScope(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()
	policy.OvertimeScope = OvertimeBeforeAndAfter

	assignments := []shift.Assignment{assignmentFor(morningShift())}
	out := localTime(19, 0)

	cls, err := Classify(localTime(8, 0), &out, assignments, wib, false, policy)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, cls.OvertimeNormalHours, 1e-9)
}

func TestClassify_UnclampedWorkedHours(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()
	policy.ClampToShift = false

	assignments := []shift.Assignment{assignmentFor(morningShift())}
	out := localTime(19, 0)

	cls, err := Classify(localTime(8, 0), &out, assignments, wib, false, policy)
	require.NoError(t, err)
	assert.InDelta(t, 11.0, cls.WorkedHours, 1e-9)
}

func TestClassify_CheckOutBeforeCheckIn(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}
	out := localTime(8, 0)

	_, err := Classify(localTime(9, 0), &out, assignments, wib, false, DefaultPolicy())
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestClassify_FirstMatchingShiftWins(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift()), assignmentFor(eveningShift())}

	cls, err := Classify(localTime(16, 30), nil, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "shift-morning", cls.ShiftID)

	cls, err = Classify(localTime(17, 45), nil, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "shift-evening", cls.ShiftID)
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	assignments := []shift.Assignment{assignmentFor(morningShift())}
	out := localTime(18, 15)

	first, err := Classify(localTime(8, 10), &out, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	second, err := Classify(localTime(8, 10), &out, assignments, wib, false, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLocalDayBoundsUTC(t *testing.T) {
	t.Parallel()

	// 01:30 local on 2024-03-11 is still 2024-03-10 in UTC.
	at := time.Date(2024, 3, 11, 1, 30, 0, 0, wib)
	from, to := LocalDayBoundsUTC(at, wib)

	assert.Equal(t, time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 11, 17, 0, 0, 0, time.UTC), to)
}

func TestLocalDate(t *testing.T) {
	t.Parallel()

	// 23:30 UTC on the 10th is already the 11th in WIB.
	at := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, testDate(), LocalDate(at, wib))
}
