package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/slideduel/slideduel/game/board"
)

var (
	// ErrShortMessage means the buffer ended before the message did.
	ErrShortMessage = errors.New("protocol: message truncated")
	// ErrTrailingData means the buffer continued past the end of the message.
	ErrTrailingData = errors.New("protocol: trailing bytes after message")
)

// EncodeClientMessage serializes a client message into a fresh buffer.
func EncodeClientMessage(m ClientMessage) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(m.Kind))
	if m.Kind == ClientClick {
		buf = appendPosition(buf, m.Pos)
	}
	return buf
}

// DecodeClientMessage parses a client message, consuming the whole buffer.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	r := reader{buf: data}

	kind, err := r.u32()
	if err != nil {
		return ClientMessage{}, err
	}

	msg := ClientMessage{Kind: ClientKind(kind)}
	switch msg.Kind {
	case ClientClick:
		if msg.Pos, err = r.position(); err != nil {
			return ClientMessage{}, err
		}
	case ClientPing:
	default:
		return ClientMessage{}, fmt.Errorf("protocol: unknown client message discriminant %d", kind)
	}

	if err := r.finish(); err != nil {
		return ClientMessage{}, err
	}
	return msg, nil
}

// EncodeServerMessage serializes a server message into a fresh buffer.
func EncodeServerMessage(m ServerMessage) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(m.Kind))
	switch m.Kind {
	case ServerGameStart:
		for i := range m.Target {
			for j := range m.Target[i] {
				buf = binary.LittleEndian.AppendUint32(buf, uint32(m.Target[i][j]))
			}
		}
		buf = appendGrid(buf, m.Board)
		buf = appendGrid(buf, m.OpponentBoard)
	case ServerOpponentClick:
		buf = appendPosition(buf, m.Pos)
	case ServerGameEnd:
		if m.IsWin {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

// DecodeServerMessage parses a server message, consuming the whole buffer.
func DecodeServerMessage(data []byte) (ServerMessage, error) {
	r := reader{buf: data}

	kind, err := r.u32()
	if err != nil {
		return ServerMessage{}, err
	}

	msg := ServerMessage{Kind: ServerKind(kind)}
	switch msg.Kind {
	case ServerGameStart:
		for i := range msg.Target {
			for j := range msg.Target[i] {
				if msg.Target[i][j], err = r.color(); err != nil {
					return ServerMessage{}, err
				}
			}
		}
		if msg.Board, err = r.grid(); err != nil {
			return ServerMessage{}, err
		}
		if msg.OpponentBoard, err = r.grid(); err != nil {
			return ServerMessage{}, err
		}
	case ServerOpponentClick:
		if msg.Pos, err = r.position(); err != nil {
			return ServerMessage{}, err
		}
	case ServerGameEnd:
		b, err := r.byte()
		if err != nil {
			return ServerMessage{}, err
		}
		msg.IsWin = b != 0
	case ServerOpponentLeft:
	default:
		return ServerMessage{}, fmt.Errorf("protocol: unknown server message discriminant %d", kind)
	}

	if err := r.finish(); err != nil {
		return ServerMessage{}, err
	}
	return msg, nil
}

func appendPosition(buf []byte, p board.Position) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Row))
	return binary.LittleEndian.AppendUint64(buf, uint64(p.Col))
}

func appendGrid(buf []byte, g board.Grid) []byte {
	for i := range g {
		for j := range g[i] {
			cell := g[i][j]
			if !cell.Occupied {
				buf = append(buf, 0)
				continue
			}
			buf = append(buf, 1)
			buf = binary.LittleEndian.AppendUint32(buf, uint32(cell.Color))
		}
	}
	return buf
}

// reader consumes a message buffer front to back.
type reader struct {
	buf []byte
}

func (r *reader) byte() (byte, error) {
	if len(r.buf) < 1 {
		return 0, ErrShortMessage
	}
	b := r.buf[0]
	r.buf = r.buf[1:]
	return b, nil
}

func (r *reader) u32() (uint32, error) {
	if len(r.buf) < 4 {
		return 0, ErrShortMessage
	}
	v := binary.LittleEndian.Uint32(r.buf)
	r.buf = r.buf[4:]
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if len(r.buf) < 8 {
		return 0, ErrShortMessage
	}
	v := binary.LittleEndian.Uint64(r.buf)
	r.buf = r.buf[8:]
	return v, nil
}

func (r *reader) position() (board.Position, error) {
	row, err := r.u64()
	if err != nil {
		return board.Position{}, err
	}
	col, err := r.u64()
	if err != nil {
		return board.Position{}, err
	}
	// bounds are the session coordinator's call; the codec only guards
	// against values that cannot survive the conversion to int
	if row > 1<<31 || col > 1<<31 {
		return board.Position{}, fmt.Errorf("protocol: coordinate out of range (%d, %d)", row, col)
	}
	return board.Position{Row: int(row), Col: int(col)}, nil
}

func (r *reader) color() (board.Color, error) {
	v, err := r.u32()
	if err != nil {
		return 0, err
	}
	if v >= board.NumColors {
		return 0, fmt.Errorf("protocol: unknown color discriminant %d", v)
	}
	return board.Color(v), nil
}

func (r *reader) grid() (board.Grid, error) {
	var g board.Grid
	for i := range g {
		for j := range g[i] {
			tag, err := r.byte()
			if err != nil {
				return board.Grid{}, err
			}
			if tag == 0 {
				continue
			}
			c, err := r.color()
			if err != nil {
				return board.Grid{}, err
			}
			g[i][j] = board.Cell{Color: c, Occupied: true}
		}
	}
	return g, nil
}

func (r *reader) finish() error {
	if len(r.buf) != 0 {
		return ErrTrailingData
	}
	return nil
}
