// Package format provides shared formatting utilities.
package format

import (
	"fmt"
	"strings"
	"time"
)

// FahrenheitToCelsius converts a temperature in °F to °C.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// Fahrenheit formats a temperature with its Celsius equivalent
// (e.g., "101.3°F (38.5°C)").
func Fahrenheit(f float64) string {
	return fmt.Sprintf("%.1f°F (%.1f°C)", f, FahrenheitToCelsius(f))
}

var bengaliDigits = strings.NewReplacer(
	"0", "০", "1", "১", "2", "২", "3", "৩", "4", "৪",
	"5", "৫", "6", "৬", "7", "৭", "8", "৮", "9", "৯",
)

// BengaliDigits replaces ASCII digits in s with Bengali digits.
func BengaliDigits(s string) string {
	return bengaliDigits.Replace(s)
}

// Ago formats an elapsed duration in human-readable form ("45s", "3h 12m").
func Ago(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", h, m)
	}
	days := int(d.Hours()) / 24
	h := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, h)
}
