package user

type Permission string

const (
	// Presence
	PermissionAttendanceRecordOwn Permission = "attendance.record_own"
	PermissionAttendanceFace      Permission = "attendance.face"
	PermissionAttendanceViewOwn   Permission = "attendance.view_own"

	// Absence sweep
	PermissionSweepRun Permission = "sweep.run"

	// Corrections
	PermissionCorrectionRaise  Permission = "correction.raise"
	PermissionCorrectionReview Permission = "correction.review"

	// Calendar
	PermissionHolidayView   Permission = "holiday.view"
	PermissionHolidayManage Permission = "holiday.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceRecordOwn,
		PermissionAttendanceFace,
		PermissionAttendanceViewOwn,
		PermissionSweepRun,
		PermissionCorrectionRaise,
		PermissionCorrectionReview,
		PermissionHolidayView,
		PermissionHolidayManage,
	},
	RoleHR: {
		PermissionAttendanceRecordOwn,
		PermissionAttendanceFace,
		PermissionAttendanceViewOwn,
		PermissionSweepRun,
		PermissionCorrectionRaise,
		PermissionCorrectionReview,
		PermissionHolidayView,
		PermissionHolidayManage,
	},
	RoleManager: {
		PermissionAttendanceRecordOwn,
		PermissionAttendanceFace,
		PermissionAttendanceViewOwn,
		PermissionCorrectionRaise,
		PermissionCorrectionReview,
		PermissionHolidayView,
	},
	RoleEmployee: {
		PermissionAttendanceRecordOwn,
		PermissionAttendanceViewOwn,
		PermissionCorrectionRaise,
		PermissionHolidayView,
	},
	RoleKiosk: {
		// Kiosk only captures faces
		PermissionAttendanceFace,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
