// Package rcon sends console commands to a game server using the
// connectionless RCON datagram format.
package rcon

// header marks a connectionless packet.
var header = []byte{0xFF, 0xFF, 0xFF, 0xFF}

// Frame builds the datagram for one command:
//
//	[FF FF FF FF]["rcon "][password][" "][command][00]
func Frame(password, command string) []byte {
	out := make([]byte, 0, len(header)+len("rcon ")+len(password)+1+len(command)+1)
	out = append(out, header...)
	out = append(out, "rcon "...)
	out = append(out, password...)
	out = append(out, ' ')
	out = append(out, command...)
	out = append(out, 0)
	return out
}
