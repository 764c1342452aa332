package server

import (
	"errors"
	"net"
	"time"
)

// DefaultPort is the reference server port (§6).
const DefaultPort = 22311

// MaxDatagramSize is the size of the buffer inbound datagrams are read into
// (the reference client reads with the same size). With planet counts ≲128
// (§4.G) every packet but FULL fits inside it; FULL grows by 24 bytes per
// planet and per live starship, is never chunked, and one larger than this
// is truncated on read and then rejected by wire.DecodeFull.
const MaxDatagramSize = 2048

// Datagram is one inbound UDP packet and its source address.
type Datagram struct {
	Addr *net.UDPAddr
	Data []byte
}

// Transport is a non-blocking UDP/IPv4 socket (component G). "Non-blocking"
// here means DrainInbound never waits for a packet that isn't already
// queued — it is implemented with a zero-wait read deadline rather than a
// platform-specific O_NONBLOCK flag, which keeps it portable across every
// OS net.ListenUDP supports.
type Transport struct {
	conn *net.UDPConn
}

// Listen binds a UDP/IPv4 socket on port. A bind failure is fatal startup
// per §7.
func Listen(port int) (*Transport, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, err
	}
	return &Transport{conn: conn}, nil
}

// DrainInbound reads every datagram already queued on the socket without
// blocking for more. Absence of data is not an error (§5).
func (t *Transport) DrainInbound() ([]Datagram, error) {
	var out []Datagram
	buf := make([]byte, MaxDatagramSize)

	for {
		if err := t.conn.SetReadDeadline(time.Now()); err != nil {
			return out, err
		}
		n, addr, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				break
			}
			return out, err
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		out = append(out, Datagram{Addr: addr, Data: data})
	}
	return out, nil
}

// SendTo writes one datagram to addr. A send failure is logged by the
// caller and never treated as fatal (§7): the peer will reconverge on the
// next snapshot.
func (t *Transport) SendTo(addr *net.UDPAddr, data []byte) error {
	_, err := t.conn.WriteToUDP(data, addr)
	return err
}

// Close releases the socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}
