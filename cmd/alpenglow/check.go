// Copyright (C) 2024-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/luxfi/alpenglow"
	"github.com/luxfi/alpenglow/config"
	"github.com/luxfi/alpenglow/properties"
	"github.com/luxfi/alpenglow/types"
)

// referenceScenario builds the spec.md §8 scenario 1 setup: four nodes of
// equal stake 100, reference config slot horizon.
func referenceScenario() *alpenglow.State {
	ref := config.Reference()
	nodes := []types.NodeId{1, 2, 3, 4}
	stakeDist := map[types.NodeId]types.StakeAmount{1: 100, 2: 100, 3: 100, 4: 100}
	return alpenglow.NewState(nodes, stakeDist, types.Slot(ref.SlotHorizon))
}

// runCheck drives the fast-path happy-path scenario to completion and
// reports seven of the §8 testable properties against the resulting state;
// progress and leader fairness are not checked.
func runCheck() error {
	s := referenceScenario()
	for _, n := range []types.NodeId{1, 2, 3, 4} {
		s.Vote(n, 1, 1, types.Fast)
	}
	s.Certify(1, types.Fast)

	checks := []struct {
		name string
		ok   bool
	}{
		{"safety", properties.Safety(s)},
		{"byzantine-resilience", properties.ByzantineResilience(s)},
		{"fast-path-efficiency", properties.FastPathEfficiency(s)},
		{"honest-no-equivocation", properties.HonestNoEquivocation(s)},
		{"bounded-finalization", properties.BoundedFinalization(s)},
		{"rotor-availability", properties.RotorAvailability(s)},
		{"economic-conservation", properties.EconomicConservation(s, 400, 0)},
	}

	failed := 0
	for _, c := range checks {
		status := "PASS"
		if !c.ok {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%-24s %s\n", c.name, status)
	}
	if failed > 0 {
		return fmt.Errorf("%d propert%s violated", failed, pluralIes(failed))
	}
	return nil
}

func pluralIes(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
