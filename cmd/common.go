/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/notargets/reactingflow/InputParameters"
	"github.com/notargets/reactingflow/thermo"
	"github.com/notargets/reactingflow/types"
)

// Case is an input file resolved against its mechanism
type Case struct {
	Input     *InputParameters.InputParametersReactor
	Mechanism *thermo.Mechanism
	Y0        []float64 // Mass fractions followed by temperature
	Mode      types.EnergyMode
}

const exampleFile = `
########################################
Title: "Hydrogen ignition"
MechanismFile: h2_global.yaml # Relative to this file
Pressure: 101325.
Temperature: 1100.
MassFractions:
  H2: 0.028
  O2: 0.226
  N2: 0.746
EnergyMode: Adiabatic # Can be "Isothermal"
TimeStep: 1.e-6
MaxIterations: 20000
Tolerance: 1.e-2
ParallelDegree: 4 # Used by the field command
Cells: 64
CellTempSpread: 200.
########################################
`

func LoadCase(inputFile string) (c *Case, err error) {
	if len(inputFile) == 0 {
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile), example:%s", exampleFile)
	}
	var data []byte
	if data, err = ioutil.ReadFile(inputFile); err != nil {
		return
	}
	c = &Case{Input: InputParameters.NewInputParametersReactor()}
	if err = c.Input.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", inputFile, err)
	}
	mechFile := c.Input.MechanismFile
	if !filepath.IsAbs(mechFile) {
		mechFile = filepath.Join(filepath.Dir(inputFile), mechFile)
	}
	if c.Mechanism, err = thermo.ReadMechanism(mechFile); err != nil {
		return nil, err
	}
	if c.Mode, err = types.NewEnergyMode(c.Input.EnergyMode); err != nil {
		return nil, err
	}
	var omega []float64
	if omega, err = c.Mechanism.MassFractions(c.Input.MassFractions); err != nil {
		return nil, fmt.Errorf("%s: %w", inputFile, err)
	}
	c.Y0 = append(omega, c.Input.Temperature)
	return
}

func printState(w io.Writer, m *thermo.Mechanism, label string, y []float64) {
	fmt.Fprintf(w, "%s\n", label)
	for i := range m.Species {
		fmt.Fprintf(w, "%-10s %14.6e\n", m.Species[i].Name, y[i])
	}
	fmt.Fprintf(w, "%-10s %14.6e\n", "T", y[len(y)-1])
}
