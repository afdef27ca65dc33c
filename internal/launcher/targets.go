package launcher

import (
	"net"
	"strconv"

	"github.com/aretw0/idx/pkg/adapters/process"
)

// Selector tokens accepted as the first argument.
const (
	CommandAPI = "api"
	CommandUI  = "ui"
)

// Fixed launch parameters.
const (
	BindHost = "0.0.0.0"
	APIPort  = 8001
	UIPort   = 8502

	APIBinary = "idx-api"
	UIBinary  = "streamlit"
	UIScript  = "ui/app.py"
)

// Target is one launchable server.
type Target struct {
	Command string
	Name    string
	Host    string
	Port    int
	Process process.RegisteredProcess
}

// Addr returns host:port.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Targets returns the launchable servers in usage order.
func Targets() []Target {
	api := strconv.Itoa(APIPort)
	ui := strconv.Itoa(UIPort)
	return []Target{
		{
			Command: CommandAPI,
			Name:    "API server",
			Host:    BindHost,
			Port:    APIPort,
			Process: process.RegisteredProcess{
				Command: APIBinary,
				Args:    []string{"--host", BindHost, "--port", api},
			},
		},
		{
			Command: CommandUI,
			Name:    "UI server",
			Host:    BindHost,
			Port:    UIPort,
			Process: process.RegisteredProcess{
				Command: UIBinary,
				Args:    []string{"run", UIScript, "--server.port", ui, "--server.address", BindHost},
			},
		},
	}
}

// Registry converts the targets into a process allow-list keyed by selector.
func Registry() map[string]process.RegisteredProcess {
	reg := make(map[string]process.RegisteredProcess)
	for _, t := range Targets() {
		reg[t.Command] = t.Process
	}
	return reg
}
