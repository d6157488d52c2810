package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParametersReactor struct {
	Title          string             `json:"Title"`
	MechanismFile  string             `json:"MechanismFile"`
	Pressure       float64            `json:"Pressure"`    // Pa
	Temperature    float64            `json:"Temperature"` // K
	MassFractions  map[string]float64 `json:"MassFractions"`
	EnergyMode     string             `json:"EnergyMode"`
	TimeStep       float64            `json:"TimeStep"`
	MaxIterations  int                `json:"MaxIterations"`
	Tolerance      float64            `json:"Tolerance"`
	ParallelDegree int                `json:"ParallelDegree"`
	Cells          int                `json:"Cells"`
	CellTempSpread float64            `json:"CellTempSpread"` // Linear temperature ramp across field cells, K
}

func NewInputParametersReactor() *InputParametersReactor {
	return &InputParametersReactor{
		Pressure:       101325.,
		Temperature:    300.,
		TimeStep:       1.e-6,
		MaxIterations:  10000,
		Tolerance:      1.e-6,
		ParallelDegree: 1,
		Cells:          1,
	}
}

func (ip *InputParametersReactor) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.Validate()
}

func (ip *InputParametersReactor) Validate() error {
	switch {
	case len(ip.MechanismFile) == 0:
		return fmt.Errorf("input must name a MechanismFile")
	case !(ip.Pressure > 0):
		return fmt.Errorf("Pressure must be positive, got %g", ip.Pressure)
	case !(ip.Temperature > 0):
		return fmt.Errorf("Temperature must be positive, got %g", ip.Temperature)
	case len(ip.MassFractions) == 0:
		return fmt.Errorf("input must give MassFractions")
	case !(ip.TimeStep > 0):
		return fmt.Errorf("TimeStep must be positive, got %g", ip.TimeStep)
	case ip.MaxIterations < 1:
		return fmt.Errorf("MaxIterations must be at least 1, got %d", ip.MaxIterations)
	case ip.Cells < 1:
		return fmt.Errorf("Cells must be at least 1, got %d", ip.Cells)
	}
	return nil
}

func (ip *InputParametersReactor) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t= Mechanism\n", ip.MechanismFile)
	fmt.Printf("%8.1f\t\t= Pressure [Pa]\n", ip.Pressure)
	fmt.Printf("%8.2f\t\t= Temperature [K]\n", ip.Temperature)
	fmt.Printf("[%s]\t\t= Energy Mode\n", ip.EnergyMode)
	fmt.Printf("%8.2e\t\t= TimeStep\n", ip.TimeStep)
	fmt.Printf("[%d]\t\t\t= Max Iterations\n", ip.MaxIterations)
	fmt.Printf("%8.2e\t\t= Tolerance\n", ip.Tolerance)
	keys := make([]string, 0, len(ip.MassFractions))
	for k := range ip.MassFractions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Y[%s] = %v\n", key, ip.MassFractions[key])
	}
}
