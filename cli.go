// backend/cli.go
package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/gewnthar/greenskies/backend/display"
	"github.com/gewnthar/greenskies/backend/models"
	"github.com/gewnthar/greenskies/backend/services"
)

type flightFlags struct {
	origin, dest, aircraft string
	distance               float64
	rf                     bool
	saf                    int
}

func (f *flightFlags) register(fs *flag.FlagSet, withAircraft bool) {
	fs.StringVar(&f.origin, "from", "", "origin IATA code")
	fs.StringVar(&f.dest, "to", "", "destination IATA code")
	fs.Float64Var(&f.distance, "distance", -1, "manual distance in km, used when -from/-to are not both set")
	fs.BoolVar(&f.rf, "rf", false, "apply the radiative forcing multiplier")
	fs.IntVar(&f.saf, "saf", 0, "sustainable aviation fuel blend, percent")
	if withAircraft {
		fs.StringVar(&f.aircraft, "aircraft", "", "aircraft type")
	}
}

func (f *flightFlags) spec() models.FlightSpec {
	spec := models.FlightSpec{
		Origin:           f.origin,
		Destination:      f.dest,
		AircraftType:     f.aircraft,
		RadiativeForcing: f.rf,
		SAFBlendPercent:  f.saf,
	}
	if f.distance >= 0 {
		d := f.distance
		spec.ManualDistanceKm = &d
	}
	return spec
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

func (a *app) runCalc(args []string) error {
	var f flightFlags
	fs := newFlagSet("calc", a.out)
	f.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.calculate(f.spec())
}

func (a *app) calculate(spec models.FlightSpec) error {
	if err := a.policy.Check(spec); err != nil {
		return err
	}
	calc, err := a.calc.Calculate(spec)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, display.RenderCalculation(calc))
	return nil
}

func (a *app) runCompare(args []string) error {
	var f flightFlags
	fs := newFlagSet("compare", a.out)
	f.register(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}

	spec := f.spec()
	if err := a.policy.Check(spec); err != nil {
		return err
	}
	distance, err := a.calc.ResolveDistance(spec)
	if err != nil {
		return err
	}
	items, err := a.calc.Compare(spec)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, display.RenderComparison(distance, items))
	return nil
}

func (a *app) runHistory(args []string) error {
	fs := newFlagSet("history", a.out)
	replay := fs.Int("replay", 0, "re-run and record history entry N (1-based)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := a.calc.History()
	if err != nil {
		return err
	}
	if *replay == 0 {
		fmt.Fprintln(a.out, display.RenderHistory(entries))
		return nil
	}
	if *replay < 1 || *replay > len(entries) {
		return fmt.Errorf("no history entry %d (have %d)", *replay, len(entries))
	}
	return a.calculate(services.ReplaySpec(entries[*replay-1]))
}

func (a *app) runExport(args []string) error {
	fs := newFlagSet("export", a.out)
	dest := fs.String("o", "", "destination file")
	xlsx := fs.Bool("xlsx", false, "write an Excel workbook instead of a CSV copy")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dest == "" {
		if *xlsx {
			return fmt.Errorf("-o is required with -xlsx")
		}
		return a.calc.StreamHistory(a.out)
	}
	if *xlsx {
		if err := a.calc.ExportExcel(*dest); err != nil {
			return err
		}
	} else if err := a.calc.Export(*dest); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "History exported to %s\n", *dest)
	return nil
}

func (a *app) runAircraft() error {
	fmt.Fprintln(a.out, display.RenderAircraft(a.calc.Reference().EmissionFactors()))
	return nil
}

func (a *app) runAirports() error {
	fmt.Fprintln(a.out, display.RenderAirports(a.calc.Reference().Airports()))
	return nil
}
