package server

// Execute runs a single RESP command against the server without a network connection.
func (s *RESPServer) Execute(w replyWriter, args [][]byte) bool {
	return s.execute(w, args)
}
