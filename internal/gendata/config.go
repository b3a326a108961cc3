package gendata

// Config holds configuration for the directory generator.
type Config struct {
	NumOrgs     int    // Number of parent organizations
	StaffPerOrg int    // Employees per organization, managers included
	OutputFile  string // Output file for the generated export
	Seed        int64  // Random seed; 0 draws a time-based seed
	Verbose     bool   // Enable verbose logging
}
