// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import "github.com/luxfi/alpenglow/types"

// LatencyModelKind discriminates the LatencyModel tagged union.
type LatencyModelKind uint8

const (
	Constant LatencyModelKind = iota
	Uniform
	Normal
	Realistic
)

// LatencyModel is a closed tagged union over the four latency formulas in
// the spec; only the fields relevant to Kind are meaningful.
type LatencyModel struct {
	Kind LatencyModelKind

	// Constant
	Value types.Timestamp

	// Uniform[Min, Max)
	Min, Max types.Timestamp

	// Normal[Mean, Sigma]
	Mean, Sigma float64

	// Realistic{Base, DistanceFactor, CongestionMultiplier}
	Base                 types.Timestamp
	DistanceFactor       float64
	CongestionMultiplier float64
}

func ConstantModel(v types.Timestamp) LatencyModel {
	return LatencyModel{Kind: Constant, Value: v}
}

func UniformModel(min, max types.Timestamp) LatencyModel {
	return LatencyModel{Kind: Uniform, Min: min, Max: max}
}

func NormalModel(mean, sigma float64) LatencyModel {
	return LatencyModel{Kind: Normal, Mean: mean, Sigma: sigma}
}

func RealisticModel(base types.Timestamp, distanceFactor, congestionMultiplier float64) LatencyModel {
	return LatencyModel{Kind: Realistic, Base: base, DistanceFactor: distanceFactor, CongestionMultiplier: congestionMultiplier}
}

// DefaultLatencyModel matches the spec's reference constant of 50ms.
func DefaultLatencyModel() LatencyModel {
	return ConstantModel(50)
}

// baseLatency computes the latency formula from §6, before spike/congestion
// adjustments. utilization is the link's current congestion utilization,
// only consumed by the Realistic model.
func (m LatencyModel) baseLatency(from, to types.NodeId, now types.Timestamp, utilization float64) types.Timestamp {
	switch m.Kind {
	case Constant:
		return m.Value
	case Uniform:
		span := m.Max - m.Min
		if span == 0 {
			return m.Min
		}
		return m.Min + (types.Timestamp(from)+types.Timestamp(to)+now)%span
	case Normal:
		mixed := (uint64(from)*17 + uint64(to)*31 + 7*uint64(now)) % 1000
		offset := (float64(mixed)/1000.0 - 0.5) * 4 * m.Sigma
		v := m.Mean + offset
		if v < 1 {
			v = 1
		}
		return types.Timestamp(v)
	case Realistic:
		dist := int64(from) - int64(to)
		if dist < 0 {
			dist = -dist
		}
		extra := float64(dist)*m.DistanceFactor + utilization*m.CongestionMultiplier
		return m.Base + types.Timestamp(extra)
	default:
		return 0
	}
}
