package payroll

const (
	StatusUnpaid = "UNPAID"
	StatusPaid   = "PAID"
)

// StandardMonthlyHours converts a monthly base into an hourly rate.
const StandardMonthlyHours = 176

const overtimeMultiplier = "1.5"

var Statuses = []string{StatusUnpaid, StatusPaid}
