package redisclient

import (
	"fmt"

	"github.com/alicebob/miniredis/v2"
)

// StartEmbedded runs an in-process redis server on 127.0.0.1:port for local
// development. Port 0 picks a free port; the chosen address is available via Addr.
// Callers stop it with Close.
func StartEmbedded(port int) (*miniredis.Miniredis, error) {
	server := miniredis.NewMiniRedis()
	if err := server.StartAddr(fmt.Sprintf("127.0.0.1:%d", port)); err != nil {
		return nil, fmt.Errorf("start embedded redis on port %d: %w", port, err)
	}
	return server, nil
}
