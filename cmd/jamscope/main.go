package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/signalsfoundry/jamscope/core"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a JSON scenario file; overrides the individual actor flags")

	txX := flag.Float64("tx-x", 0, "transmitter x position (m)")
	txY := flag.Float64("tx-y", 0, "transmitter y position (m)")
	txPower := flag.Float64("tx-power", 30, "transmitter power (dBm)")
	txGain := flag.Float64("tx-gain", 0, "transmitter antenna gain (dBi)")
	txFreq := flag.Float64("tx-freq", 1e9, "transmitter frequency (Hz)")

	jamX := flag.Float64("jam-x", 500, "jammer x position (m)")
	jamY := flag.Float64("jam-y", 0, "jammer y position (m)")
	jamPower := flag.Float64("jam-power", 40, "jammer power (dBm)")
	jamGain := flag.Float64("jam-gain", 0, "jammer antenna gain (dBi)")
	jamFreq := flag.Float64("jam-freq", 1e9, "jammer frequency (Hz)")

	rxX := flag.Float64("rx-x", 1000, "receiver x position (m)")
	rxY := flag.Float64("rx-y", 0, "receiver y position (m)")
	rxGain := flag.Float64("rx-gain", 0, "receiver antenna gain (dBi)")
	rxSens := flag.Float64("rx-sens", -90, "receiver sensitivity (dBm)")

	threshold := flag.Float64("threshold", 10, "J/S threshold (dB) above which jamming succeeds")

	trials := flag.Int("trials", 0, "run a Monte Carlo analysis with this many trials (0 = single snapshot)")
	seed := flag.Int64("seed", 0, "Monte Carlo random seed")
	jamPowerStdDev := flag.Float64("jam-power-stddev", 2, "Monte Carlo stddev around the jammer power (dB)")
	jamPosStdDev := flag.Float64("jam-pos-stddev", 50, "Monte Carlo stddev around the jammer position (m)")

	flag.Parse()

	var scenario core.Scenario
	if *scenarioPath != "" {
		f, err := os.Open(*scenarioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open scenario %q: %v\n", *scenarioPath, err)
			os.Exit(1)
		}
		loaded, err := core.LoadScenario(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "load scenario: %v\n", err)
			os.Exit(1)
		}
		scenario = *loaded
	} else {
		scenario = core.Scenario{
			Transmitter: core.Actor{
				Name:        "transmitter",
				Position:    core.Point{X: *txX, Y: *txY},
				PowerDBm:    *txPower,
				GainDBi:     *txGain,
				FrequencyHz: *txFreq,
			},
			Jammer: core.Actor{
				Name:        "jammer",
				Position:    core.Point{X: *jamX, Y: *jamY},
				PowerDBm:    *jamPower,
				GainDBi:     *jamGain,
				FrequencyHz: *jamFreq,
			},
			Receiver: core.Receiver{
				Name:           "receiver",
				Position:       core.Point{X: *rxX, Y: *rxY},
				GainDBi:        *rxGain,
				SensitivityDBm: *rxSens,
			},
			ThresholdDB: *threshold,
		}
	}

	if *trials > 0 {
		runMonteCarlo(scenario, *trials, *seed, *jamPowerStdDev, *jamPosStdDev)
		return
	}

	result, err := core.EvaluateScenario(scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluate scenario: %v\n", err)
		os.Exit(1)
	}
	printResult(scenario, result)
}

func printResult(s core.Scenario, r *core.ScenarioResult) {
	fmt.Printf("Transmitter @ (%.1f, %.1f)  %.1f dBm  %.1f dBi  %.1f MHz\n",
		s.Transmitter.Position.X, s.Transmitter.Position.Y,
		s.Transmitter.PowerDBm, s.Transmitter.GainDBi, s.Transmitter.FrequencyHz/1e6)
	fmt.Printf("Jammer      @ (%.1f, %.1f)  %.1f dBm  %.1f dBi  %.1f MHz\n",
		s.Jammer.Position.X, s.Jammer.Position.Y,
		s.Jammer.PowerDBm, s.Jammer.GainDBi, s.Jammer.FrequencyHz/1e6)
	fmt.Printf("Receiver    @ (%.1f, %.1f)  sensitivity %.1f dBm\n",
		s.Receiver.Position.X, s.Receiver.Position.Y, s.Receiver.SensitivityDBm)
	fmt.Println()

	fmt.Printf("↳ Signal link:  %8.1f m  bearing %6.3f rad  loss %7.2f dB  received %8.2f dBm\n",
		r.SignalLink.DistanceM,
		s.Receiver.Position.BearingTo(s.Transmitter.Position),
		r.SignalLink.PathLossDB,
		r.SignalLink.ReceivedPowerDBm,
	)
	fmt.Printf("↳ Jamming link: %8.1f m  bearing %6.3f rad  loss %7.2f dB  received %8.2f dBm\n",
		r.JammingLink.DistanceM,
		s.Receiver.Position.BearingTo(s.Jammer.Position),
		r.JammingLink.PathLossDB,
		r.JammingLink.ReceivedPowerDBm,
	)
	fmt.Println()

	fmt.Printf("J/S ratio: %.2f dB (threshold %.2f dB, margin %+.2f dB)\n",
		r.JSRatioDB, r.ThresholdDB, r.MarginDB)
	fmt.Printf("Jamming successful:       %v (%s)\n", r.JammingSuccessful, r.Effectiveness)
	fmt.Printf("Signal above sensitivity: %v\n", r.SignalAboveSensitivity)
	fmt.Printf("Communication successful: %v\n", r.CommunicationSuccessful)
}

func runMonteCarlo(s core.Scenario, trials int, seed int64, powerStdDev, posStdDev float64) {
	model := monteCarloFromScenario(s, trials, seed, powerStdDev, posStdDev)

	result, err := model.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "monte carlo run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Monte Carlo: %d trials (seed %d)\n", result.Trials, seed)
	fmt.Printf("  jammer power  ~ N(%.1f dBm, %.1f dB)\n", s.Jammer.PowerDBm, powerStdDev)
	fmt.Printf("  jammer pos    ~ N((%.1f, %.1f) m, %.1f m)\n", s.Jammer.Position.X, s.Jammer.Position.Y, posStdDev)
	fmt.Println()
	fmt.Printf("Jamming success rate: %.1f%%\n", result.JammingSuccessRate*100)
	fmt.Printf("J/S ratio: mean %.2f dB, min %.2f dB, max %.2f dB\n",
		result.MeanJSRatioDB, result.MinJSRatioDB, result.MaxJSRatioDB)
}

// monteCarloFromScenario treats the scenario's jammer as the nominal centre
// of the uncertainty distributions.
func monteCarloFromScenario(s core.Scenario, trials int, seed int64, powerStdDev, posStdDev float64) *core.MonteCarloModel {
	return &core.MonteCarloModel{
		Transmitter: s.Transmitter,
		Receiver:    s.Receiver,
		Jammer: core.JammerDistribution{
			PowerDBm:    core.Normal{Mean: s.Jammer.PowerDBm, StdDev: powerStdDev},
			GainDBi:     core.Constant(s.Jammer.GainDBi),
			PosX:        core.Normal{Mean: s.Jammer.Position.X, StdDev: posStdDev},
			PosY:        core.Normal{Mean: s.Jammer.Position.Y, StdDev: posStdDev},
			FrequencyHz: s.Jammer.FrequencyHz,
		},
		ThresholdDB: s.ThresholdDB,
		Trials:      trials,
		Seed:        seed,
	}
}
