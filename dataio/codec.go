package dataio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// FlatCodec reads and writes the minimal flat raw-volume format: a
// 4-int32 little-endian header (DimX, DimY, DimZ, DimT) followed by
// DimX*DimY*DimZ*DimT float32 samples, in Volume's documented layout.
// It implements VolumeReader and VolumeWriter.
type FlatCodec struct{}

var (
	_ VolumeReader = FlatCodec{}
	_ VolumeWriter = FlatCodec{}
)

// ReadVolume loads a Volume from path in the flat format.
func (FlatCodec) ReadVolume(path string) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: ReadVolume: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var header [4]int32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("dataio: ReadVolume: header: %w", err)
	}
	v := &Volume{
		DimX: int(header[0]),
		DimY: int(header[1]),
		DimZ: int(header[2]),
		DimT: int(header[3]),
	}
	if v.DimX <= 0 || v.DimY <= 0 || v.DimZ <= 0 || v.DimT <= 0 {
		return nil, ErrNonPositiveDims
	}

	n := v.DimX * v.DimY * v.DimZ * v.DimT
	v.Data = make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, v.Data); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, ErrTruncatedFile
		}
		return nil, fmt.Errorf("dataio: ReadVolume: samples: %w", err)
	}
	return v, nil
}

// WriteVolume persists v to path in the flat format, overwriting any
// existing file.
func (FlatCodec) WriteVolume(path string, v *Volume) error {
	if err := v.validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataio: WriteVolume: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := [4]int32{int32(v.DimX), int32(v.DimY), int32(v.DimZ), int32(v.DimT)}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("dataio: WriteVolume: header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, v.Data); err != nil {
		return fmt.Errorf("dataio: WriteVolume: samples: %w", err)
	}
	return w.Flush()
}
