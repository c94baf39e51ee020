// Package scenarios holds the fixed requirement-sheet fixtures that stand in
// for a real spreadsheet upload, and the matcher that turns their rows into
// matched/unmatched line items.
package scenarios

import "errors"

var ErrUnknownScenario = errors.New("unknown scenario")

// Row is one line of a customer requirement sheet.
type Row struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// Scenario is one canned requirement sheet.
type Scenario struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

var fixtures = []Scenario{
	{
		ID:   "enterprise-dc",
		Name: "Enterprise DC Migration",
		Rows: []Row{
			{Label: "Application VDI farm 8 vCPU", Quantity: 4},
			{Label: "Database storage tier SSD", Quantity: 2},
			{Label: "Perimeter firewall and security stack", Quantity: 1},
			{Label: "Site backup and DR vault", Quantity: 1},
			{Label: "Branch VPN connectivity", Quantity: 3},
			{Label: "Managed SAP BASIS support", Quantity: 1},
		},
	},
	{
		ID:   "smb-web",
		Name: "SMB Web Presence",
		Rows: []Row{
			{Label: "Web server VDI small", Quantity: 2},
			{Label: "Object storage archive", Quantity: 1},
			{Label: "Office network uplink", Quantity: 1},
			{Label: "Nightly backup", Quantity: 1},
		},
	},
}

// List returns all canned scenarios.
func List() []Scenario {
	out := make([]Scenario, len(fixtures))
	copy(out, fixtures)
	return out
}

// Get returns one scenario by id.
func Get(id string) (Scenario, error) {
	for _, s := range fixtures {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, ErrUnknownScenario
}
