package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the configured networks as a table
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		_, err := fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints]")
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"NETWORK", "CHAIN ID", "RPC URL"})
	for _, network := range result.Networks {
		if network.Error != nil {
			t.AppendRow(table.Row{
				network.Name,
				color.New(color.FgRed).Sprint("-"),
				color.New(color.FgRed).Sprintf("error: %v", network.Error),
			})
			continue
		}
		t.AppendRow(table.Row{
			network.Name,
			color.New(color.FgGreen).Sprint(network.ChainID),
			network.RPCURL,
		})
	}

	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
