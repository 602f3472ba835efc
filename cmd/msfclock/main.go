// Command msfclock acquires the current UTC date and time from the UK's
// MSF 60 kHz time signal and prints it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/tam-radio/msftime/internal/announce"
	"github.com/tam-radio/msftime/internal/config"
	"github.com/tam-radio/msftime/internal/hw"
	"github.com/tam-radio/msftime/internal/msf"
	"github.com/tam-radio/msftime/internal/rig"
)

func main() {
	var (
		configPath   = pflag.StringP("config", "c", "", "Path to a YAML config file.")
		samplePeriod = pflag.IntP("sample-period", "s", 0, "Sample period in ms during minute-marker search (overrides config).")
		once         = pflag.Bool("once", false, "Perform a single acquisition attempt and exit even if it fails.")
		gpioChip     = pflag.String("gpio-chip", "", "GPIO chip device for the carrier line (overrides config).")
		gpioLine     = pflag.Int("gpio-line", -1, "GPIO line offset for the carrier line (overrides config).")
		serialDevice = pflag.String("serial", "", "Serial device to read the carrier line from instead of GPIO.")
		advertise    = pflag.Bool("advertise", false, "Advertise the acquired time over mDNS.")
		rigModel     = pflag.Int("rig-model", 0, "Hamlib rig model number to tune to 60kHz before acquiring, 0 to disable.")
		rigPort      = pflag.String("rig-port", "", "Hamlib rig control port.")
		verbose      = pflag.CountP("verbose", "v", "Increase log verbosity (-v, -vv).")
		help         = pflag.Bool("help", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "msfclock: acquire UTC time from the MSF 60kHz broadcast\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: true})
	switch {
	case *verbose >= 2:
		logger.SetLevel(charmlog.DebugLevel)
	case *verbose == 1:
		logger.SetLevel(charmlog.InfoLevel)
	default:
		logger.SetLevel(charmlog.WarnLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	applyFlagOverrides(&cfg, *samplePeriod, *gpioChip, *gpioLine, *serialDevice, *advertise, *rigModel, *rigPort)

	if cfg.RigModel != 0 {
		tuner, err := rig.Open(cfg.RigModel, cfg.RigPort)
		if err != nil {
			logger.Fatal("tuning front-end rig", "err", err)
		}
		defer tuner.Close()
	}

	reader, closeReader, err := openReader(cfg)
	if err != nil {
		logger.Fatal("opening carrier reader", "err", err)
	}
	defer closeReader()

	receiver := msf.New(reader,
		msf.WithSamplePeriod(cfg.SamplePeriodMs),
		msf.WithLogger(logger),
	)

	var announcer *announce.Announcer
	if cfg.Advertise {
		announcer, err = announce.New(cfg.AdvertiseName, cfg.AdvertisePort)
		if err != nil {
			logger.Warn("mDNS announcer unavailable", "err", err)
		} else {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			go func() {
				if err := announcer.Run(ctx); err != nil {
					logger.Warn("mDNS responder stopped", "err", err)
				}
			}()
		}
	}

	var res msf.AcquisitionResult
	if *once {
		res = receiver.AcquireOnce()
	} else {
		res = receiver.AcquireBlocking()
	}

	if announcer != nil {
		announcer.Update(res)
	}

	printResult(res)

	if !res.ChecksumPassed {
		os.Exit(1)
	}
}

func applyFlagOverrides(cfg *config.Config, samplePeriod int, gpioChip string, gpioLine int, serialDevice string, advertise bool, rigModel int, rigPort string) {
	if samplePeriod > 0 {
		cfg.SamplePeriodMs = samplePeriod
	}
	if gpioChip != "" {
		cfg.GPIOChip = gpioChip
		cfg.Backend = "gpio"
	}
	if gpioLine >= 0 {
		cfg.GPIOLine = gpioLine
		cfg.Backend = "gpio"
	}
	if serialDevice != "" {
		cfg.SerialDevice = serialDevice
		cfg.Backend = "serial"
	}
	if advertise {
		cfg.Advertise = true
	}
	if rigModel != 0 {
		cfg.RigModel = rigModel
	}
	if rigPort != "" {
		cfg.RigPort = rigPort
	}
}

// openReader constructs the msf.Reader for the configured hardware
// backend and a matching close function.
func openReader(cfg config.Config) (msf.Reader, func(), error) {
	switch cfg.Backend {
	case "serial":
		device := cfg.SerialDevice
		if device == "" {
			found, err := hw.DiscoverSerialReceiver("")
			if err != nil {
				return nil, nil, err
			}
			device = found
		}

		line := hw.SerialLineDCD
		if cfg.SerialLine == "cts" {
			line = hw.SerialLineCTS
		}
		sr, err := hw.OpenSerialReader(device, line)
		if err != nil {
			return nil, nil, err
		}
		return sr, func() { sr.Close() }, nil
	default:
		chip := cfg.GPIOChip
		if chip == "" {
			found, err := hw.DiscoverGPIOChip()
			if err != nil {
				return nil, nil, err
			}
			chip = found
		}

		gr, err := hw.OpenGPIOReader(chip, cfg.GPIOLine, cfg.GPIOActiveLow)
		if err != nil {
			return nil, nil, err
		}
		return gr, func() { gr.Close() }, nil
	}
}

func printResult(res msf.AcquisitionResult) {
	formatted, err := strftime.Format("%Y-%m-%d %H:%M:%S UTC", res.Time())
	if err != nil {
		formatted = res.Time().String()
	}

	if res.ChecksumPassed {
		fmt.Printf("%s (day-of-week %d, peak score %d)\n", formatted, res.DayOfWeek, res.PeakScore)
		return
	}

	fmt.Printf("acquisition failed: peak score %d, %d noisy second(s)\n", res.PeakScore, len(res.NoisySeconds))
}
