package server

// Server aggregates the HTTP servers of the individual resources. Only
// predictions exist today.
type Server struct {
	PredictionServer
}

func NewServer(
	predictionServer PredictionServer,
) Server {
	return Server{
		PredictionServer: predictionServer,
	}
}
