package world

import "testing"

func TestParse_RoundTripsNames(t *testing.T) {
	for i := 0; i < TimeOfDayCount; i++ {
		got, ok := ParseTimeOfDay(TimeOfDay(i).String())
		if !ok || got != TimeOfDay(i) {
			t.Fatalf("ParseTimeOfDay(%s) = %v, %v", TimeOfDay(i), got, ok)
		}
	}
	for i := 0; i < WeatherCount; i++ {
		got, ok := ParseWeather(Weather(i).String())
		if !ok || got != Weather(i) {
			t.Fatalf("ParseWeather(%s) = %v, %v", Weather(i), got, ok)
		}
	}
	for i := 0; i < ContentKindCount; i++ {
		got, ok := ParseContentKind(ContentKind(i).String())
		if !ok || got != ContentKind(i) {
			t.Fatalf("ParseContentKind(%s) = %v, %v", ContentKind(i), got, ok)
		}
	}
	if _, ok := ParseWeather("Hail"); ok {
		t.Fatal("unknown weather parsed")
	}
}
