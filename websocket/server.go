package websocket

import (
	"context"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/esimov/particle-field/config"
	"github.com/esimov/particle-field/loop"
	"github.com/gorilla/websocket"
)

// HttpParams configures the web server.
type HttpParams struct {
	Address string
	Prefix  string
	Root    string
}

// DefaultParams serves the bundled browser client.
func DefaultParams() HttpParams {
	return HttpParams{
		Address: "localhost:5000",
		Prefix:  "/",
		Root:    "web",
	}
}

const writeWait = time.Second

// A server application calls the Upgrade method from an HTTP request handler to initiate a connection
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1 << 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server streams particle frames to browser clients. Every connection gets
// its own field, driven by its own frame loop.
type Server struct {
	params HttpParams
	tun    config.Tunables
}

// NewServer returns a server running fields configured by tun.
func NewServer(p HttpParams, tun config.Tunables) (*Server, error) {
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return nil, err
	}
	p.Root = root
	return &Server{params: p, tun: tun}, nil
}

// Handler returns the static file server and the /ws endpoint, with every
// request logged.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.params.Prefix, http.StripPrefix(s.params.Prefix, http.FileServer(http.Dir(s.params.Root))))
	mux.HandleFunc("/ws", s.wsHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Print(r.RemoteAddr + " " + r.Method + " " + r.URL.String())
		mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.params.Address,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.Printf("serving %s as %s on %s", s.params.Root, s.params.Prefix, s.params.Address)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// wsHandler upgrades the connection and runs a frame loop for it until
// the client goes away.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	// Upgrade the http connection to a WebSocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		var herr websocket.HandshakeError
		if !errors.As(err, &herr) {
			log.Println(err)
		}
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	d := loop.NewDriver(s.tun)
	sched := loop.NewTicker(s.tun.FPS)
	go readSocket(conn, d, sched, cancel)

	err = sched.Run(ctx, func() {
		f := d.Step()
		if f == nil {
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(encodeFrame(f)); err != nil {
			log.Println(err)
			cancel()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
	}
}

// readSocket listens for input messages and hands them to the frame loop.
func readSocket(conn *websocket.Conn, d *loop.Driver, sched loop.Poster, cancel context.CancelFunc) {
	defer cancel()

	for {
		var msg inputMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
		if fn := msg.apply(d); fn != nil {
			sched.Post(fn)
		}
	}
}
