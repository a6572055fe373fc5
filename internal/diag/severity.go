package diag

// Severity orders diagnostics; formula checks fail on SevError only.
type Severity uint8

const (
	SevInfo    Severity = iota
	SevWarning          // сейчас выдаётся только через внешний Reporter
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
