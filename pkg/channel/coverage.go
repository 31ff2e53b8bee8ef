// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"math"

	"github.com/davidkleiven/gononlin/nonlin"
	"github.com/nfvri/ran-beam-sampler/pkg/utils"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// RangeProblem describes a boresight link whose SNR only depends on distance
type RangeProblem struct {
	TxPowerDbm  float64
	GainDb      float64 // tx + rx antenna gain
	NoisePowerW float64
	Frequency   float64 // Hz
	RefSnrDb    float64
}

// SnrAt returns the SNR in dB at distance meters
func (p RangeProblem) SnrAt(distance float64) float64 {
	rxDbm := p.TxPowerDbm + p.GainDb - FreeSpacePathLoss(distance, p.Frequency)
	return rxDbm - utils.WToDbm(p.NoisePowerW)
}

// SolveRange runs the Newton Krylov solver for the distance at which the SNR drops to RefSnrDb.
// The unknown is log10 of the distance so the iterate stays positive.
func SolveRange(p RangeProblem, initialGuess float64) (float64, error) {
	if p.NoisePowerW <= 0 || p.Frequency <= 0 {
		return 0, errors.NewInvalid("noise power and frequency must be positive")
	}
	if initialGuess <= 0 {
		initialGuess = 1
	}

	problem := nonlin.Problem{
		F: func(out, x []float64) {
			out[0] = p.SnrAt(math.Pow(10, x[0])) - p.RefSnrDb
		},
	}

	solver := nonlin.NewtonKrylov{
		// Maximum number of Newton iterations
		Maxiter: 50,

		// Stepsize used to approximate jacobian with finite differences
		StepSize: 1e-4,

		// Tolerance for the solution
		Tol: 1e-7,
	}

	res, err := solver.Solve(problem, []float64{math.Log10(initialGuess)})
	if err != nil {
		return 0, errors.NewInvalid("range solver failed for %v dB: %v", p.RefSnrDb, err)
	}
	log.Debugf("range solver result: %v", res)
	if !res.Converged {
		return 0, errors.NewInvalid("range solver did not converge for %v dB", p.RefSnrDb)
	}
	return math.Pow(10, res.X[0]), nil
}
