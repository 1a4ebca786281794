package server

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// handleJoinQR renders the student join link for a game as a QR code PNG,
// for instructors projecting the board.
func handleJoinQR(publicURL string) http.HandlerFunc {
	base := strings.TrimRight(publicURL, "/")

	return func(w http.ResponseWriter, r *http.Request) {
		png, err := qrcode.Encode(base+"/student/"+gameID(r), qrcode.Medium, 256)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "max-age=86400")
		w.Write(png)
	}
}
