package hw

import (
	"fmt"
	"strings"

	"github.com/jochenvg/go-udev"
)

// DiscoverSerialReceiver enumerates tty devices via udev and returns the
// device node of the first one whose ID_VENDOR or ID_MODEL property
// contains vendorHint, so an operator doesn't have to hardcode
// /dev/ttyUSB0-style paths that renumber across reboots. An empty
// vendorHint matches the first tty device udev reports.
func DiscoverSerialReceiver(vendorHint string) (string, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()

	if err := e.AddMatchSubsystem("tty"); err != nil {
		return "", fmt.Errorf("hw: udev match tty: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return "", fmt.Errorf("hw: udev enumerate: %w", err)
	}

	for _, d := range devices {
		if d.Devnode() == "" {
			continue
		}
		if vendorHint == "" {
			return d.Devnode(), nil
		}
		if strings.Contains(strings.ToLower(d.PropertyValue("ID_VENDOR")), strings.ToLower(vendorHint)) ||
			strings.Contains(strings.ToLower(d.PropertyValue("ID_MODEL")), strings.ToLower(vendorHint)) {
			return d.Devnode(), nil
		}
	}

	return "", fmt.Errorf("hw: no serial receiver matching %q found", vendorHint)
}

// DiscoverGPIOChip enumerates gpio chardev devices via udev and returns
// the first one found, e.g. "/dev/gpiochip0".
func DiscoverGPIOChip() (string, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()

	if err := e.AddMatchSubsystem("gpio"); err != nil {
		return "", fmt.Errorf("hw: udev match gpio: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return "", fmt.Errorf("hw: udev enumerate: %w", err)
	}

	for _, d := range devices {
		if d.Devnode() != "" {
			return d.Devnode(), nil
		}
	}

	return "", fmt.Errorf("hw: no gpio chip found")
}
