package sheetgen

// Config holds configuration for a generated sheet.
type Config struct {
	Rows    int      // number of data rows
	Roles   []string // raw role labels to draw from
	Regions []string // regions to draw from
	Messy   bool     // mix in zero, unparseable and blank cells
}

// DefaultRoles are raw labels that exercise canonical role matching.
var DefaultRoles = []string{
	"Developer", "Analyst", "Manager", "SCRUM Master", "Scrum PM",
	"TPDL", "Senior TPDL", "PM", "PMO Lead", "PGM", "QA",
}

// DefaultRegions are the generated regions.
var DefaultRegions = []string{"North", "South", "East", "West", "Central"}
