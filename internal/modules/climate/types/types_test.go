package types

import (
	"encoding/json"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestNewPrecipitationByDate_laterRowWins(t *testing.T) {
	rows := []DatePrecipitation{
		{Date: "2017-08-20", Value: ptr(0.1)},
		{Date: "2017-08-23", Value: nil},
		{Date: "2017-08-23", Value: ptr(0.3)},
	}

	got := NewPrecipitationByDate(rows)

	if len(got) != 2 {
		t.Fatalf("len = %d; want 2", len(got))
	}
	if v := got["2017-08-20"]; v == nil || *v != 0.1 {
		t.Errorf("2017-08-20 = %v; want 0.1", v)
	}
	if v := got["2017-08-23"]; v == nil || *v != 0.3 {
		t.Errorf("2017-08-23 = %v; want 0.3 (last row)", v)
	}
}

func TestPrecipitationByDate_JSON(t *testing.T) {
	got := NewPrecipitationByDate([]DatePrecipitation{
		{Date: "2017-08-22", Value: ptr(0.5)},
		{Date: "2017-08-23", Value: nil},
	})

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"2017-08-22":0.5,"2017-08-23":null}`
	if string(b) != want {
		t.Errorf("json = %s; want %s", b, want)
	}
}

func TestPrecipitationByDate_emptyIsObject(t *testing.T) {
	b, err := json.Marshal(NewPrecipitationByDate(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{}` {
		t.Errorf("json = %s; want {}", b)
	}
}

func TestTemperatureObservation_JSON(t *testing.T) {
	obs := []TemperatureObservation{
		{Date: "2016-08-23", TOBS: 77},
		{Date: "2016-08-24", TOBS: 77.5},
	}

	b, err := json.Marshal(obs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[["2016-08-23",77],["2016-08-24",77.5]]`
	if string(b) != want {
		t.Fatalf("json = %s; want %s", b, want)
	}

	var back []TemperatureObservation
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[1] != obs[1] {
		t.Errorf("round trip = %+v; want %+v", back, obs)
	}
}

func TestTemperatureObservation_UnmarshalRejectsWrongShape(t *testing.T) {
	for _, in := range []string{`["2016-08-23"]`, `{"date":"2016-08-23"}`, `["2016-08-23","hot"]`} {
		var o TemperatureObservation
		if err := json.Unmarshal([]byte(in), &o); err == nil {
			t.Errorf("Unmarshal(%s) err = nil; want error", in)
		}
	}
}

func TestTemperatureStats_JSON(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		s := TemperatureStats{Min: ptr(75), Avg: ptr(77.5), Max: ptr(80)}
		b, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != `[75,77.5,80]` {
			t.Errorf("json = %s; want [75,77.5,80]", b)
		}
		if s.Empty() {
			t.Error("Empty() = true; want false")
		}
	})

	t.Run("empty aggregate is three nulls", func(t *testing.T) {
		var s TemperatureStats
		b, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != `[null,null,null]` {
			t.Errorf("json = %s; want [null,null,null]", b)
		}
		if !s.Empty() {
			t.Error("Empty() = false; want true")
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		var s TemperatureStats
		if err := json.Unmarshal([]byte(`[54,71.5,85]`), &s); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if *s.Min != 54 || *s.Avg != 71.5 || *s.Max != 85 {
			t.Errorf("stats = %v/%v/%v", *s.Min, *s.Avg, *s.Max)
		}
		if err := json.Unmarshal([]byte(`[1,2]`), &s); err == nil {
			t.Error("unmarshal of 2 elements err = nil; want error")
		}
	})
}
