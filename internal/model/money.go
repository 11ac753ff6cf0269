package model

import "fmt"

// Cents is a fixed-point money amount with two fractional digits,
// stored as an integer number of cents to avoid float arithmetic.
type Cents int64

// String renders the amount as a decimal string, e.g. 950 -> "9.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a quoted decimal string so clients
// never see binary floating point artifacts.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}
