package ctl

import (
	"fmt"

	"github.com/large-farva/oakmon/internal/imu"
)

// IMU shows the latest IMU samples in chronological order.
func (c *Client) IMU(count int, jsonOut bool) error {
	samples := c.analyzer.Load(count)

	if jsonOut {
		return printJSON(map[string]any{"samples": samples})
	}

	fmt.Println()
	fmt.Println(header("  LATEST IMU SAMPLES"))
	fmt.Println(rule(50))

	if len(samples) == 0 {
		fmt.Println("  No IMU data available.")
		fmt.Println()
		return nil
	}

	for i, s := range samples {
		fmt.Printf("\n  %s %s %s\n",
			colorize(bold, fmt.Sprintf("Sample %d", i+1)),
			colorize(dim, fmt.Sprintf("seq %d", s.SequenceNum)),
			colorize(dim, s.Timestamp),
		)
		if s.Accelerometer != nil {
			fmt.Printf("    %-14s x=%8.3f  y=%8.3f  z=%8.3f  m/s²\n",
				colorize(dim, "accelerometer"), s.Accelerometer.X, s.Accelerometer.Y, s.Accelerometer.Z)
		}
		if s.Gyroscope != nil {
			fmt.Printf("    %-14s x=%8.3f  y=%8.3f  z=%8.3f  rad/s\n",
				colorize(dim, "gyroscope"), s.Gyroscope.X, s.Gyroscope.Y, s.Gyroscope.Z)
		}
		if s.Magnetometer != nil {
			fmt.Printf("    %-14s x=%8.3f  y=%8.3f  z=%8.3f  µT\n",
				colorize(dim, "magnetometer"), s.Magnetometer.X, s.Magnetometer.Y, s.Magnetometer.Z)
		}
		if s.Rotation != nil {
			fmt.Printf("    %-14s i=%7.4f  j=%7.4f  k=%7.4f  real=%7.4f\n",
				colorize(dim, "rotation"), s.Rotation.I, s.Rotation.J, s.Rotation.K, s.Rotation.Real)
		}
	}
	fmt.Println()
	return nil
}

// Analyze computes per-axis statistics over a recent sample window and
// renders them as a table.
func (c *Client) Analyze(samples int, jsonOut bool) error {
	an := c.analyzer.Analyze(samples)

	if jsonOut {
		return printJSON(an)
	}

	fmt.Println()
	fmt.Println(header("  IMU ANALYSIS"))
	fmt.Println(rule(50))

	if an == nil {
		fmt.Println("  No IMU data available.")
		fmt.Println()
		return nil
	}

	fmt.Printf("  %-14s %d\n", colorize(dim, "Samples:"), an.SampleCount)
	if len(an.Timestamps) > 0 {
		fmt.Printf("  %-14s %s .. %s\n", colorize(dim, "Window:"),
			an.Timestamps[0], an.Timestamps[len(an.Timestamps)-1])
	}
	fmt.Println()

	t := newTable("  ", "Sensor", "Axis", "Mean", "Std", "N")
	t.alignRight(2)
	t.alignRight(3)
	t.alignRight(4)

	addSensor := func(name string, s imu.SensorSeries) {
		for i, ax := range []imu.AxisSeries{s.X, s.Y, s.Z} {
			label := ""
			if i == 0 {
				label = name
			}
			t.row(label, string(rune('x'+i)),
				fmt.Sprintf("%.4f", ax.Mean),
				fmt.Sprintf("%.4f", ax.Std),
				fmt.Sprintf("%d", len(ax.Values)))
		}
	}

	addSensor("accelerometer", an.Accelerometer)
	addSensor("gyroscope", an.Gyroscope)
	if an.Magnetometer != nil {
		addSensor("magnetometer", *an.Magnetometer)
	}
	t.flush()
	fmt.Println()
	return nil
}
