package model

import (
	"fmt"
	"time"
)

// FechaFormato is the ISO-8601 day format used everywhere a Fecha is
// serialized: JSON fields, map keys and URL parameters.
const FechaFormato = "2006-01-02"

// Fecha represents a calendar day with day-level granularity. It is the
// primary key of the closings ledger and the value stamped on ventas and
// movimientos as their logical business date. The zero value is "no date".
type Fecha struct {
	y int
	m time.Month
	d int
}

// NuevaFecha returns a normalized Fecha for the given year, month and day.
// Out-of-range components roll over the way time.Date does.
func NuevaFecha(year int, month time.Month, day int) Fecha {
	f := Fecha{year, month, day}
	f.y, f.m, f.d = f.time().Date()
	return f
}

// HoyFecha returns the current wall-clock calendar day.
func HoyFecha() Fecha { return NuevaFecha(time.Now().Date()) }

// FechaDe truncates a timestamp to its calendar day.
func FechaDe(t time.Time) Fecha { return NuevaFecha(t.Date()) }

// ParseFecha parses an ISO-8601 day ("2006-01-02").
func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(FechaFormato, s)
	if err != nil {
		return Fecha{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return NuevaFecha(t.Date()), nil
}

func (f Fecha) time() time.Time { return time.Date(f.y, f.m, f.d, 0, 0, 0, 0, time.UTC) }

func (f Fecha) String() string { return f.time().Format(FechaFormato) }

// EsCero reports whether f is the zero value.
func (f Fecha) EsCero() bool { return f.y == 0 && f.m == 0 && f.d == 0 }

// Anterior returns the previous calendar day. This is the accessor the
// carry-forward lookup uses — calendar arithmetic, never string slicing.
func (f Fecha) Anterior() Fecha { return NuevaFecha(f.y, f.m, f.d-1) }

// Siguiente returns the next calendar day.
func (f Fecha) Siguiente() Fecha { return NuevaFecha(f.y, f.m, f.d+1) }

// Antes reports whether f is strictly before x.
func (f Fecha) Antes(x Fecha) bool { return f.time().Before(x.time()) }

// Despues reports whether f is strictly after x.
func (f Fecha) Despues(x Fecha) bool { return f.time().After(x.time()) }

// MarshalText implements encoding.TextMarshaler so Fecha works both as a
// JSON value and as a JSON map key.
func (f Fecha) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fecha) UnmarshalText(b []byte) error {
	parsed, err := ParseFecha(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
