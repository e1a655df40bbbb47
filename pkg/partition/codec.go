package partition

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes p as whitespace-separated group indices on a single line.
func Encode(w io.Writer, p Partition) error {
	bw := bufio.NewWriter(w)
	for i, g := range p {
		if i > 0 {
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(strconv.Itoa(g)); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode reads whitespace-separated group indices until EOF.
func Decode(r io.Reader) (Partition, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	p := make(Partition, 0)
	for scanner.Scan() {
		token := scanner.Text()
		g, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("entry %d: invalid group index %q: %w", len(p), token, err)
		}
		p = append(p, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading partition: %w", err)
	}
	return p, nil
}

// String renders p in the same format Encode writes, without the newline.
func (p Partition) String() string {
	var sb strings.Builder
	for i, g := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(g))
	}
	return sb.String()
}
