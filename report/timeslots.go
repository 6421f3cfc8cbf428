package report

// UnknownSlotLabel is rendered when a stored slot key has no entry.
const UnknownSlotLabel = "—"

// SlotKeys lists the 12 two-hour convenient-time windows in day order.
var SlotKeys = []string{
	"00_02", "02_04", "04_06", "06_08", "08_10", "10_12",
	"12_14", "14_16", "16_18", "18_20", "20_22", "22_00",
}

// TimeSlots maps a stored slot key to its human label.
var TimeSlots = map[string]string{
	"00_02": "12:00 AM - 02:00 AM",
	"02_04": "02:00 AM - 04:00 AM",
	"04_06": "04:00 AM - 06:00 AM",
	"06_08": "06:00 AM - 08:00 AM",
	"08_10": "08:00 AM - 10:00 AM",
	"10_12": "10:00 AM - 12:00 PM",
	"12_14": "12:00 PM - 02:00 PM",
	"14_16": "02:00 PM - 04:00 PM",
	"16_18": "04:00 PM - 06:00 PM",
	"18_20": "06:00 PM - 08:00 PM",
	"20_22": "08:00 PM - 10:00 PM",
	"22_00": "10:00 PM - 12:00 AM",
}

// SlotLabel resolves a slot key to its label. Unknown keys render as a
// placeholder rather than failing the document.
func SlotLabel(key string) string {
	if label, ok := TimeSlots[key]; ok {
		return label
	}
	return UnknownSlotLabel
}

// IsValidSlot reports whether key names one of the 12 windows.
func IsValidSlot(key string) bool {
	_, ok := TimeSlots[key]
	return ok
}
