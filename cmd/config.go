package cmd

type Config struct {
	HTTPPort           string
	APIBaseURL         string
	RealtimeURL        string
	CredentialsFile    string
	LocationReportSpec string
	SessionRefreshSpec string
	AgentLat           float64
	AgentLng           float64
}
