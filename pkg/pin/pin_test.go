package pin

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseDescription(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Description
		wantErr bool
	}{
		{name: "empty", input: "", want: Description{}},
		{name: "no_pin", input: "NO_PIN", want: Description{}},
		{name: "plain", input: "gpio.12", want: Description{Kind: KindGPIO, Number: 12}},
		{name: "active low pull-up", input: "gpio.4:low:pu", want: Description{Kind: KindGPIO, Number: 4, ActiveLow: true, PullUp: true}},
		{name: "upper case", input: "GPIO.2:PD", want: Description{Kind: KindGPIO, Number: 2, PullDown: true}},
		{name: "explicit high", input: "gpio.5:high", want: Description{Kind: KindGPIO, Number: 5}},
		{name: "unknown family", input: "i2so.3", wantErr: true},
		{name: "bad number", input: "gpio.x", wantErr: true},
		{name: "negative number", input: "gpio.-1", wantErr: true},
		{name: "unknown option", input: "gpio.1:fast", wantErr: true},
		{name: "both pulls", input: "gpio.1:pu:pd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDescription(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrBadDescription) {
					t.Fatalf("ParseDescription(%q) error = %v, want ErrBadDescription", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescription(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDescription(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDescriptionStringRoundTrip(t *testing.T) {
	for _, s := range []string{"NO_PIN", "gpio.12", "gpio.4:low:pu", "gpio.2:pd"} {
		d, err := ParseDescription(s)
		if err != nil {
			t.Fatalf("ParseDescription(%q) failed: %v", s, err)
		}
		if d.String() != s {
			t.Errorf("String() = %q, want %q", d.String(), s)
		}
	}
}

func TestBankAcquireRelease(t *testing.T) {
	bank := NewESP32Bank()
	d := Description{Kind: KindGPIO, Number: 12}

	p, err := bank.Acquire(d)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !bank.InUse(12) {
		t.Fatal("expected gpio.12 in use")
	}

	if _, err := bank.Acquire(d); !errors.Is(err, ErrPinInUse) {
		t.Fatalf("second Acquire error = %v, want ErrPinInUse", err)
	}

	p.Release()
	if bank.InUse(12) {
		t.Fatal("expected gpio.12 free after Release")
	}
	if !p.Undefined() {
		t.Error("released pin should be undefined")
	}
	p.Release()

	p2, err := bank.Acquire(d)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	p2.Release()
}

func TestBankAcquireErrors(t *testing.T) {
	bank := NewESP32Bank()

	if _, err := bank.Acquire(Description{Kind: KindGPIO, Number: 7}); !errors.Is(err, ErrNoSuchPin) {
		t.Errorf("flash pin error = %v, want ErrNoSuchPin", err)
	}
	if _, err := bank.Acquire(Description{Kind: KindGPIO, Number: 36, PullUp: true}); !errors.Is(err, ErrUnsupportedAttr) {
		t.Errorf("input-only pull-up error = %v, want ErrUnsupportedAttr", err)
	}

	p, err := bank.Acquire(Description{})
	if err != nil {
		t.Fatalf("undefined Acquire failed: %v", err)
	}
	if !p.Undefined() {
		t.Error("expected undefined pin")
	}
}

func TestPinActiveLow(t *testing.T) {
	bank := NewESP32Bank()
	p, err := bank.Acquire(Description{Kind: KindGPIO, Number: 13, ActiveLow: true})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer p.Release()

	if err := p.SetAttr(AttrOutput); err != nil {
		t.Fatalf("SetAttr failed: %v", err)
	}
	if !bank.Level(13) {
		t.Error("active-low output off should be physically high")
	}

	p.On()
	if bank.Level(13) {
		t.Error("active-low output on should be physically low")
	}
	if !p.Read() {
		t.Error("Read() should report logical on")
	}
	if !p.Attr().Has(AttrActiveLow | AttrOutput) {
		t.Errorf("Attr() = %s, want low,out", p.Attr())
	}
}

func TestPinInitialOn(t *testing.T) {
	bank := NewESP32Bank()
	p, err := bank.Acquire(Description{Kind: KindGPIO, Number: 2})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := p.SetAttr(AttrOutput | AttrInitialOn); err != nil {
		t.Fatalf("SetAttr failed: %v", err)
	}
	if !bank.Level(2) {
		t.Error("expected output driven on")
	}
}

func TestPinSetAttrUnsupported(t *testing.T) {
	bank := NewESP32Bank()
	p, err := bank.Acquire(Description{Kind: KindGPIO, Number: 34})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := p.SetAttr(AttrOutput); !errors.Is(err, ErrUnsupportedAttr) {
		t.Errorf("SetAttr(out) on input-only error = %v, want ErrUnsupportedAttr", err)
	}
}

func TestNilPinIsUndefined(t *testing.T) {
	var p *Pin
	if !p.Undefined() {
		t.Error("nil pin should be undefined")
	}
	if p.Name() != UndefinedName {
		t.Errorf("Name() = %q, want %q", p.Name(), UndefinedName)
	}
	p.On()
	if p.Read() {
		t.Error("nil pin should read false")
	}
}

func TestPinReport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	bank := NewESP32Bank()
	p, err := bank.Acquire(Description{Kind: KindGPIO, Number: 26})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	p.Report(logger, "Z servo")
	if !strings.Contains(buf.String(), "gpio.26") {
		t.Errorf("report output %q missing pin name", buf.String())
	}

	buf.Reset()
	(&Pin{}).Report(logger, "unused")
	if buf.Len() != 0 {
		t.Errorf("undefined pin reported %q", buf.String())
	}
}
