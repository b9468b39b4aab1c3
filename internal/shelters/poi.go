package shelters

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// BookingAvailable is the Booking value that marks a bookable shelter.
const BookingAvailable Booking = 1

// WritePOI prints one POI record per shelter: a CSV header line of
// longitude, latitude and quoted name, followed by a quoted multi-line
// description.
func WritePOI(w io.Writer, list []Shelter, cat Catalogue) error {
	bw := bufio.NewWriter(w)
	for _, s := range list {
		name := strings.ReplaceAll(s.Name, `"`, "")
		fmt.Fprintf(bw, "%s,%s,\"%s\",\"Features:\n", s.Longitude, s.Latitude, name)
		if s.Address != "" {
			fmt.Fprintf(bw, "Address: %s\n", s.Address)
		}
		for _, f := range s.Features {
			bw.WriteString(cat.Describe(f))
			bw.WriteByte('\n')
		}
		if s.Booking == BookingAvailable {
			bw.WriteString("Booking possible\n")
		}
		bw.WriteString("\"\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write poi: %w", err)
	}
	return nil
}
