package sources

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/danpilch/ifstat/pkg/stats"
)

const netstatSample = `Name       Mtu   Network       Address            Ipkts Ierrs     Ibytes    Opkts Oerrs     Obytes  Coll
lo0        16384 <Link#1>                        123456     0   98765432   123456     0   98765431     0
lo0        16384 127           localhost         123456     -   98765432   123456     -   98765431     -
lo0        16384 ::1/128     ::1                 123456     -   98765432   123456     -   98765431     -
gif0*      1280  <Link#2>                             0     0          0        0     0          0     0
en0        1500  <Link#4>    a4:83:e7:12:34:56  2345678     0 2345678901  1234567     0  123456789     0
en0        1500  192.168.1     192.168.1.23     2345000     -  234567000  1234000     -   12345000     -
`

func TestParseNetstat(t *testing.T) {
	snap, err := ParseNetstat(strings.NewReader(netstatSample))
	if err != nil {
		t.Fatalf("ParseNetstat() error: %v", err)
	}

	if want := []string{"lo0", "gif0", "en0"}; !reflect.DeepEqual(snap.Names(), want) {
		t.Fatalf("Names() = %v, want %v", snap.Names(), want)
	}

	tests := map[string]stats.Counters{
		"lo0":  {RxBytes: 98765432, TxBytes: 98765431},
		"gif0": {},
		"en0":  {RxBytes: 2345678901, TxBytes: 123456789},
	}
	for name, want := range tests {
		got, ok := snap.Get(name)
		if !ok || got != want {
			t.Fatalf("Get(%s) = %+v, %v, want %+v", name, got, ok, want)
		}
	}
}

func TestParseNetstatMalformed(t *testing.T) {
	header := "Name Mtu Network Address Ipkts Ierrs Ibytes Opkts Oerrs Obytes Coll\n"
	tests := []struct {
		name string
		line string
	}{
		{"non-numeric Ibytes", "en0 1500 <Link#4> aa:bb 1 0 bad 1 0 5 0\n"},
		{"non-numeric Obytes", "en0 1500 <Link#4> aa:bb 1 0 5 1 0 bad 0\n"},
		{"short link row", "en0 1500 <Link#4> 1 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNetstat(strings.NewReader(header + tt.line))
			if !errors.Is(err, ErrInvalidData) {
				t.Fatalf("expected ErrInvalidData, got %v", err)
			}
		})
	}
}
