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

	"github.com/spf13/cobra"

	"github.com/notargets/reactingflow/model_problems/Reactor0D"
)

// ReactorCmd represents the reactor command
var ReactorCmd = &cobra.Command{
	Use:   "reactor",
	Short: "Steady homogeneous reactor with a point implicit chemistry update",
	Long: `
Marches a constant pressure homogeneous reactor in pseudo time until the chemistry
residual drops below the tolerance,

reactingflow reactor -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		c, err := LoadCase(inputFile)
		if err != nil {
			return err
		}
		c.Input.Print()
		_, err = RunReactor(c, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(ReactorCmd)
	ReactorCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- MechanismFile\n\t- Pressure, Temperature, MassFractions")
}

func RunReactor(c *Case, w io.Writer) (res *Reactor0D.Result, err error) {
	var r *Reactor0D.Reactor
	if r, err = Reactor0D.NewReactor(c.Mechanism.NewOracle(), c.Input.Pressure, c.Y0, c.Input.TimeStep,
		c.Input.MaxIterations, c.Input.Tolerance, c.Mode); err != nil {
		return
	}
	if res, err = r.Solve(); err != nil {
		return
	}
	fmt.Fprintf(w, "Iterations: %d, Residual: %8.3e, Converged: %v\n", res.Iterations, res.Residual, res.Converged)
	printState(w, c.Mechanism, "Final state", res.State)
	return
}
