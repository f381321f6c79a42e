package testutil

import "bytes"

// GenerateMP4 returns size bytes starting with an ISO base media ftyp box, so
// content sniffing reports video/mp4.
func GenerateMP4(size int) []byte {
	header := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'i', 's', 'o', '2',
	}
	if size < len(header) {
		size = len(header)
	}
	buf := bytes.NewBuffer(make([]byte, 0, size))
	buf.Write(header)
	buf.Write(make([]byte, size-len(header)))
	return buf.Bytes()
}
