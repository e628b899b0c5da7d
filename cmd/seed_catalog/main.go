package main

import (
	"flag"
	"fmt"
	"log"

	"rateCurves/internal/adapters/catalogfile"
	"rateCurves/internal/curve"
	"rateCurves/internal/domain"
)

var (
	output  = flag.String("out", "data/curves.json", "catalog file to write")
	current = flag.Float64("current", -1, "current utilization stamped on every curve, negative to omit")
	fee     = flag.Float64("fee", 0, "protocol fee percent stamped on every curve, zero to omit")
)

// seedModels are the kinked markets written by default.
var seedModels = []struct {
	name  string
	token string
	model curve.KinkModel
}{
	{name: "Stable", token: "USDC", model: curve.DefaultKinkModel},
	{name: "Stable Low", token: "DAI", model: curve.KinkModel{BaseRate: 0, Slope1: 0.04, Slope2: 0.75, Kink: 0.9}},
	{name: "Volatile", token: "ETH", model: curve.KinkModel{BaseRate: 0.01, Slope1: 0.07, Slope2: 3, Kink: 0.45}},
	{name: "Linear", token: "WBTC", model: curve.KinkModel{BaseRate: 0.02, Slope1: 0.2}},
}

func main() {
	flag.Parse()

	defs := make([]*domain.CurveDefinition, 0, len(seedModels))
	for _, s := range seedModels {
		if err := s.model.Validate(); err != nil {
			log.Fatalf("Invalid model %s: %v", s.name, err)
		}
		def := s.model.Definition(s.name)
		def.Token = s.token
		if *current >= 0 {
			u := *current
			def.CurrentUtilization = &u
		}
		if *fee != 0 {
			f := *fee
			def.ProtocolFee = &f
		}
		defs = append(defs, def)
	}

	if err := catalogfile.Write(*output, defs); err != nil {
		log.Fatalf("Error writing catalog: %v", err)
	}
	fmt.Printf("Wrote %d curves to %s\n", len(defs), *output)
}
