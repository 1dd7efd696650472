package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alfredjeanlab/corpnet/internal/model"
	"github.com/alfredjeanlab/corpnet/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printCompanyTable(c *model.Company) {
	fmt.Printf("Number:   %s\n", ui.RenderAccent(c.CompanyNumber))
	fmt.Printf("Name:     %s\n", c.CompanyName)
	fmt.Printf("Status:   %s\n", ui.RenderStatus(c.CompanyStatus))
	if c.CompanyType != "" {
		fmt.Printf("Type:     %s\n", c.CompanyType)
	}
	if c.DateOfCreation != "" {
		fmt.Printf("Created:  %s\n", c.DateOfCreation)
	}
	if len(c.SICCodes) > 0 {
		fmt.Printf("SIC:      %s\n", strings.Join(c.SICCodes, ", "))
	}
	if addr := formatAddress(c.Address); addr != "" {
		fmt.Printf("Address:  %s\n", addr)
	}
}

func formatAddress(a model.Address) string {
	parts := []string{a.Premises, a.AddressLine1, a.AddressLine2, a.Locality, a.Region, a.PostalCode, a.Country}
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func printCompanyListTable(companies []*model.Company) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSTATUS\tNAME")
	for _, c := range companies {
		name := c.CompanyName
		if len(name) > 60 {
			name = name[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.CompanyNumber, ui.RenderStatus(c.CompanyStatus), name)
	}
	w.Flush()
	fmt.Printf("\n%d companies\n", len(companies))
}

func printOfficerListTable(officers []*model.Officer) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROLE\tAPPOINTED\tRESIGNED")
	for _, o := range officers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			o.Name, o.Role, o.AppointedOn, ui.RenderResigned(o.ResignedOn))
	}
	w.Flush()
	fmt.Printf("\n%d officers\n", len(officers))
}

func printPSCListTable(pscs []*model.PSC) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tNOTIFIED\tCONTROL")
	for _, p := range pscs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Name, p.Kind, p.NotifiedOn, strings.Join(p.NaturesOfControl, ", "))
	}
	w.Flush()
	fmt.Printf("\n%d persons with significant control\n", len(pscs))
}

func printNetworkSummary(n *model.Network) {
	meta := n.Meta
	fmt.Printf("Build:      %s\n", ui.RenderAccent(meta.BuildID))
	fmt.Printf("Seed:       %s\n", meta.SeedNumber)
	fmt.Printf("Nodes:      %d (%d companies, %d people)\n",
		len(n.Nodes), n.CompanyCount(), n.PersonCount())
	fmt.Printf("Edges:      %d\n", len(n.Edges))
	fmt.Printf("API calls:  %d\n", meta.APICalls)
	fmt.Printf("Duration:   %s\n", meta.FinishedAt.Sub(meta.StartedAt).Round(time.Millisecond))
	if meta.Truncated {
		fmt.Printf("Truncated:  %s\n", ui.RenderMuted("yes (raise --max-companies to expand further)"))
	}
	if n.Partial() {
		fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("%d expansions failed:", len(n.Failures))))
		for _, f := range n.Failures {
			who := f.OfficerName
			if who == "" {
				who = f.CompanyNumber
			}
			fmt.Printf("  %s: %s\n", who, f.Error)
		}
	}
}
