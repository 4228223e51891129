package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Krimson/exstats/emulator/internal/models"
	"github.com/Krimson/exstats/pkg/geo"
)

// ErrEmptyTrack в файле нет ни одной точки
var ErrEmptyTrack = errors.New("track has no points")

// Point точка записанного трека
type Point struct {
	TimeSec float64
	Lat     float64
	Lon     float64
	// SpeedKPH скорость в км/ч; отрицательная - не записана
	SpeedKPH float64
}

// ReadCSVFile читает трек с колонками time_sec,lat,lon[,speed_kph]; первая строка - заголовок
func ReadCSVFile(filename string) ([]Point, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTrack, filename)
	}

	points := make([]Point, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		if len(record) < 3 {
			return nil, fmt.Errorf("invalid record at line %d: expected at least 3 columns", line)
		}

		var values [3]float64
		for col := range values {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number at line %d column %d: %w", line, col+1, err)
			}
			values[col] = v
		}

		point := Point{TimeSec: values[0], Lat: values[1], Lon: values[2], SpeedKPH: -1}
		if len(record) > 3 && record[3] != "" {
			speed, err := strconv.ParseFloat(record[3], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid speed at line %d: %w", line, err)
			}
			point.SpeedKPH = speed
		}
		points = append(points, point)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].TimeSec < points[j].TimeSec })
	return points, nil
}

// Replay воспроизводит записанный трек, интерполируя между точками.
// После последней точки остается на месте с нулевой скоростью.
type Replay struct {
	points  []Point
	elapsed time.Duration
	mu      sync.Mutex
}

// NewReplay создает воспроизведение трека
func NewReplay(points []Point) *Replay {
	return &Replay{points: points}
}

func (r *Replay) Next(dt time.Duration) models.Position {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.elapsed += dt
	t := r.elapsed.Seconds()

	last := r.points[len(r.points)-1]
	if t >= last.TimeSec {
		return models.Position{Lat: last.Lat, Lon: last.Lon, Speed: 0, Fix: true}
	}

	i := sort.Search(len(r.points), func(i int) bool { return r.points[i].TimeSec > t })
	if i == 0 {
		first := r.points[0]
		return models.Position{Lat: first.Lat, Lon: first.Lon, Speed: speedOf(first, r.points[1:]), Fix: true}
	}

	a, b := r.points[i-1], r.points[i]
	progress := (t - a.TimeSec) / (b.TimeSec - a.TimeSec)
	return models.Position{
		Lat:   a.Lat + (b.Lat-a.Lat)*progress,
		Lon:   a.Lon + (b.Lon-a.Lon)*progress,
		Speed: speedOf(a, r.points[i:]),
		Fix:   true,
	}
}

// speedOf записанная скорость точки или средняя до следующей
func speedOf(p Point, rest []Point) float64 {
	if p.SpeedKPH >= 0 {
		return p.SpeedKPH
	}
	if len(rest) == 0 {
		return 0
	}
	next := rest[0]
	dt := next.TimeSec - p.TimeSec
	if dt <= 0 {
		return 0
	}
	meters := geo.DistanceMeters(geo.Point{Lat: p.Lat, Lon: p.Lon}, geo.Point{Lat: next.Lat, Lon: next.Lon})
	return meters / dt * 3.6
}

func (r *Replay) Validate() error {
	if len(r.points) == 0 {
		return ErrEmptyTrack
	}
	return nil
}

func (r *Replay) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elapsed = 0
}

// Seed не используется: воспроизведение детерминировано
func (r *Replay) Seed(int64) {}
