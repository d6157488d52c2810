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
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/reactingflow/chemistry"
	"github.com/notargets/reactingflow/model_problems/ChemistryField"
	"github.com/notargets/reactingflow/utils"
)

// FieldCmd represents the field command
var FieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Point implicit chemistry over a set of cells, evaluated in parallel",
	Long: `
Builds Cells copies of the input state with a linear temperature ramp of CellTempSpread
and advances them together, one oracle per worker,

reactingflow field -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		c, err := LoadCase(inputFile)
		if err != nil {
			return err
		}
		if np, _ := cmd.Flags().GetInt("parallel"); np > 0 {
			c.Input.ParallelDegree = np
		}
		_, err = RunField(c, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(FieldCmd)
	FieldCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	FieldCmd.Flags().IntP("parallel", "p", 0, "number of workers, overrides ParallelDegree")
}

func RunField(c *Case, w io.Writer) (f *ChemistryField.Field, err error) {
	var (
		NCells = c.Input.Cells
		Y      = make([][]float64, NCells)
		NC     = len(c.Y0) - 1
	)
	for k := range Y {
		Y[k] = append([]float64{}, c.Y0...)
		if NCells > 1 {
			Y[k][NC] += c.Input.CellTempSpread * float64(k) / float64(NCells-1)
		}
	}
	factory := func() chemistry.ThermoKineticsOracle { return c.Mechanism.NewOracle() }
	if f, err = ChemistryField.NewField(factory, c.Input.ParallelDegree, c.Input.Pressure, Y, c.Mode); err != nil {
		return
	}
	var (
		start    = time.Now()
		residual float64
		iter     int
	)
	for iter = 0; iter < c.Input.MaxIterations; iter++ {
		if residual, err = f.Advance(c.Input.TimeStep); err != nil {
			return
		}
		if residual < c.Input.Tolerance {
			iter++
			break
		}
	}
	log.WithFields(log.Fields{
		"iterations": iter,
		"residual":   residual,
		"elapsed":    time.Since(start),
		"memory":     utils.GetMemUsage(),
	}).Info("field finished")
	fmt.Fprintf(w, "Cells: %d, Workers: %d, Iterations: %d, Residual: %8.3e\n",
		NCells, f.Partitions.ParallelDegree, iter, residual)
	printState(w, c.Mechanism, "First cell", f.Y[0])
	printState(w, c.Mechanism, "Last cell", f.Y[NCells-1])
	return
}
