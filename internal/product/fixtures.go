package product

import "github.com/shopspring/decimal"

const placeholderImage = "https://placehold.co/600x600.png"

func images(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = placeholderImage
	}
	return out
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func discount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Seed returns the catalog a fresh storefront starts with.
func Seed() []Product {
	return []Product{
		{ID: "1", Name: "Smartphone X-Pro", Description: "El último modelo con cámara de 108MP y pantalla AMOLED.", Price: price("999.99"), DiscountPrice: discount("899.99"), Images: images(5), Category: "Electrónica", Operator: "Ana García"},
		{ID: "2", Name: "Laptop UltraSlim", Description: "Potencia y portabilidad en un diseño elegante.", Price: price("1299"), Images: images(3), Category: "Electrónica", Operator: "Carlos Ruiz"},
		{ID: "3", Name: "Auriculares SoundWave", Description: "Cancelación de ruido activa y hasta 40 horas de batería.", Price: price("199.5"), Images: images(4), Category: "Electrónica", Operator: "Ana García"},
		{ID: "4", Name: "Camiseta de Algodón Orgánico", Description: "Suave, cómoda y amigable con el medio ambiente.", Price: price("29.99"), Images: images(1), Category: "Ropa", Operator: "Laura Méndez"},
		{ID: "5", Name: "Silla Ergonómica de Oficina", Description: "Cuida tu espalda durante las largas jornadas de trabajo.", Price: price("350"), Images: images(2), Category: "Hogar", Operator: "Carlos Ruiz"},
		{ID: "6", Name: `Colección Completa de "Crónicas de un Mago"`, Description: "Sumérgete en un mundo de fantasía épica.", Price: price("85"), DiscountPrice: discount("75"), Images: images(3), Category: "Librería", Operator: "Sistema"},
		{ID: "7", Name: `Bicicleta de Montaña "Raptor"`, Description: "Conquista cualquier terreno con su doble suspensión.", Price: price("750"), Images: images(4), Category: "Deportes", Operator: "Ana García"},
		{ID: "8", Name: `Pintura Abstracta "Cosmos"`, Description: "Una obra de arte única para tu sala de estar.", Price: price("500"), Images: images(1), Category: "Arte", Operator: "Sistema"},
		{ID: "9", Name: "Gramófono de 1920", Description: "Una pieza de historia que aún funciona perfectamente.", Price: price("1200"), Images: images(2), Category: "Antigüedades", Operator: "Carlos Ruiz"},
		{ID: "10", Name: `Coche Clásico "El Dorado"`, Description: "Un modelo icónico de los años 50, restaurado.", Price: price("50000"), Images: images(3), Category: "Vehículos", Operator: "Sistema"},
		{ID: "11", Name: "Teclado Mecánico RGB", Description: "Switches personalizables para una experiencia de escritura superior.", Price: price("150"), Images: images(2), Category: "Electrónica", Operator: "Ana García"},
		{ID: "12", Name: "Smartwatch FitLife 2", Description: "Monitorea tu salud y actividad física con estilo.", Price: price("250"), DiscountPrice: discount("220"), Images: images(3), Category: "Electrónica", Operator: "Carlos Ruiz"},
	}
}
