package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/render"
)

func newGatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gates [flags]",
		Short: "list the gate catalog.",
		Long: `List every gate kind a circuit document may name, grouped by category,
with its diagram symbol, target count, accepted controls and parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if GetFlag(cmd, "names") {
				for _, k := range circuit.Kinds() {
					fmt.Fprintln(out, k)
				}
				return nil
			}
			_, err := io.WriteString(out, catalogListing(lipgloss.NewRenderer(out)))
			return err
		},
	}
	cmd.Flags().Bool("names", false, "print only the gate names, one per line")
	return cmd
}

// catalogListing renders the catalog in the style of the gate picker: a
// title per category followed by one row per kind.
func catalogListing(r *lipgloss.Renderer) string {
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9e64"))
	name := r.NewStyle().Foreground(lipgloss.Color("#c0caf5"))
	symbol := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#73daca"))
	dim := r.NewStyle().Foreground(lipgloss.Color("#565f89"))

	byCategory := make(map[circuit.Category][]circuit.Kind)
	var order []circuit.Category
	for _, k := range circuit.Kinds() {
		cat := k.Spec().Category
		if _, ok := byCategory[cat]; !ok {
			order = append(order, cat)
		}
		byCategory[cat] = append(byCategory[cat], k)
	}

	var sb strings.Builder
	for i, cat := range order {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(title.Render(cat.String()))
		sb.WriteString("\n")
		sb.WriteString(dim.Render(strings.Repeat("─", 60)))
		sb.WriteString("\n")
		for _, k := range byCategory[cat] {
			sb.WriteString("   ")
			sb.WriteString(name.Render(fmt.Sprintf("%-24s", k)))
			sb.WriteString(symbol.Render(fmt.Sprintf("%-8s", render.Symbol(k))))
			sb.WriteString(dim.Render(describeSpec(k.Spec())))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// describeSpec summarizes the shape of a kind.
func describeSpec(s circuit.Spec) string {
	var parts []string
	switch s.Arity {
	case 0:
		parts = append(parts, "no targets")
	case 1:
		parts = append(parts, "1 target")
	default:
		parts = append(parts, fmt.Sprintf("%d targets", s.Arity))
	}
	switch s.Controls {
	case circuit.AnyControls:
		parts = append(parts, "any controls")
	case 0:
	case 1:
		parts = append(parts, "1 control")
	default:
		parts = append(parts, fmt.Sprintf("%d controls", s.Controls))
	}

	var params []string
	for _, p := range []struct {
		shape circuit.ParamShape
		name  string
	}{
		{circuit.ParamTheta, "theta"},
		{circuit.ParamPhi, "phi"},
		{circuit.ParamLambda, "lambda"},
		{circuit.ParamRoot, "root"},
	} {
		if s.Params.Has(p.shape) {
			params = append(params, p.name)
		}
	}
	if s.Bit {
		params = append(params, "bit")
	}
	if len(params) > 0 {
		parts = append(parts, "("+strings.Join(params, ", ")+")")
	}
	return strings.Join(parts, ", ")
}
