package geo

import "math"

// EarthRadiusM средний радиус Земли в метрах
const EarthRadiusM = 6371000

// Point географическая точка в градусах
type Point struct {
	Lat float64
	Lon float64
}

// DistanceMeters возвращает расстояние между двумя точками в метрах.
// Используется эквидистантное (equirectangular) приближение: оно точно
// на коротких отрезках (до десятков километров) и не учитывает переход
// через антимеридиан и окрестности полюсов.
func DistanceMeters(a, b Point) float64 {
	x := radians(b.Lon-a.Lon) * math.Cos(radians((a.Lat+b.Lat)/2))
	y := radians(b.Lat - a.Lat)
	return math.Sqrt(x*x+y*y) * EarthRadiusM
}

// Offset сдвигает точку на distanceM метров по азимуту bearingDeg
func Offset(p Point, bearingDeg, distanceM float64) Point {
	bearing := radians(bearingDeg)
	dLat := distanceM * math.Cos(bearing) / EarthRadiusM
	dLon := distanceM * math.Sin(bearing) / (EarthRadiusM * math.Cos(radians(p.Lat)))
	return Point{
		Lat: p.Lat + degrees(dLat),
		Lon: p.Lon + degrees(dLon),
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
