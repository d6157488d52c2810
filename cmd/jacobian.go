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

	"github.com/notargets/reactingflow/chemistry"
)

// JacobianCmd represents the jacobian command
var JacobianCmd = &cobra.Command{
	Use:   "jacobian",
	Short: "Print the source terms and diagonal Jacobian at the initial state of an input file",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		c, err := LoadCase(inputFile)
		if err != nil {
			return err
		}
		_, _, err = RunJacobian(c, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(JacobianCmd)
	JacobianCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
}

func RunJacobian(c *Case, w io.Writer) (S, J []float64, err error) {
	var (
		o  = c.Mechanism.NewOracle()
		lm *chemistry.LinearModelChemistry
	)
	if lm, err = chemistry.NewLinearModelChemistryFromOracle(o); err != nil {
		return
	}
	S, J = make([]float64, lm.NE), make([]float64, lm.NE)
	if err = lm.SourceAndJacobian(o, c.Y0, c.Input.Pressure, S, J); err != nil {
		return
	}
	ms := lm.Mixture()
	fmt.Fprintf(w, "%-10s %14s %14s %14s\n", "", "y", "S", "dS/dy")
	for i := range c.Mechanism.Species {
		fmt.Fprintf(w, "%-10s %14.6e %14.6e %14.6e\n", c.Mechanism.Species[i].Name, c.Y0[i], S[i], J[i])
	}
	fmt.Fprintf(w, "%-10s %14.6e %14.6e %14.6e\n", "T", c.Y0[lm.NC], S[lm.NC], J[lm.NC])
	fmt.Fprintf(w, "MW = %g kg/kmol, rho = %g kg/m3, cp = %g J/kg/K\n", ms.MW, ms.Rho, ms.CpMixMass)
	return
}
