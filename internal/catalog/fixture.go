package catalog

import "time"

// Fixture returns the built-in demo catalog. Order is significant: suggestion
// generation preserves it.
func Fixture() []Track {
	return []Track{
		{ID: "1", Title: "Blinding Lights", Artist: "The Weeknd", Album: "After Hours", Duration: 3*time.Minute + 20*time.Second, Genre: "pop", Mood: "energetic"},
		{ID: "2", Title: "Shape of You", Artist: "Ed Sheeran", Album: "Divide", Duration: 3*time.Minute + 53*time.Second, Genre: "pop", Mood: "happy"},
		{ID: "3", Title: "Someone Like You", Artist: "Adele", Album: "21", Duration: 4*time.Minute + 45*time.Second, Genre: "pop", Mood: "melancholic"},
		{ID: "4", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", Duration: 5*time.Minute + 55*time.Second, Genre: "rock", Mood: "epic"},
		{ID: "5", Title: "Billie Jean", Artist: "Michael Jackson", Album: "Thriller", Duration: 4*time.Minute + 54*time.Second, Genre: "disco", Mood: "groovy"},
		{ID: "6", Title: "Hotel California", Artist: "Eagles", Album: "Hotel California", Duration: 6*time.Minute + 30*time.Second, Genre: "rock", Mood: "nostalgic"},
		{ID: "7", Title: "Watermelon Sugar", Artist: "Harry Styles", Album: "Fine Line", Duration: 2*time.Minute + 54*time.Second, Genre: "pop", Mood: "happy"},
		{ID: "8", Title: "Bad Guy", Artist: "Billie Eilish", Album: "When We All Fall Asleep", Duration: 3*time.Minute + 14*time.Second, Genre: "pop", Mood: "dark"},
		{ID: "9", Title: "Thunderstruck", Artist: "AC/DC", Album: "The Razors Edge", Duration: 4*time.Minute + 52*time.Second, Genre: "metal", Mood: "intense"},
		{ID: "10", Title: "Perfect", Artist: "Ed Sheeran", Album: "Divide", Duration: 4*time.Minute + 23*time.Second, Genre: "pop", Mood: "romantic"},
		{ID: "11", Title: "Take Five", Artist: "The Dave Brubeck Quartet", Album: "Time Out", Duration: 5*time.Minute + 24*time.Second, Genre: "jazz", Mood: "relaxed"},
		{ID: "12", Title: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind", Duration: 5*time.Minute + 1*time.Second, Genre: "rock", Mood: "rebellious"},
		{ID: "13", Title: "Imagine", Artist: "John Lennon", Album: "Imagine", Duration: 3*time.Minute + 3*time.Second, Genre: "pop", Mood: "peaceful"},
		{ID: "14", Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Album: "Appetite for Destruction", Duration: 5*time.Minute + 56*time.Second, Genre: "rock", Mood: "energetic"},
		{ID: "15", Title: "Yesterday", Artist: "The Beatles", Album: "Help!", Duration: 2*time.Minute + 5*time.Second, Genre: "rock", Mood: "nostalgic"},
		{ID: "16", Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Duration: 9*time.Minute + 22*time.Second, Genre: "jazz", Mood: "relaxed"},
		{ID: "17", Title: "The Thrill Is Gone", Artist: "B.B. King", Album: "Completely Well", Duration: 5*time.Minute + 26*time.Second, Genre: "blues", Mood: "melancholic"},
		{ID: "18", Title: "No Woman, No Cry", Artist: "Bob Marley", Album: "Natty Dread", Duration: 4*time.Minute + 6*time.Second, Genre: "reggae", Mood: "peaceful"},
		{ID: "19", Title: "Jolene", Artist: "Dolly Parton", Album: "Jolene", Duration: 2*time.Minute + 42*time.Second, Genre: "country", Mood: "heartfelt"},
		{ID: "20", Title: "Clair de Lune", Artist: "Claude Debussy", Album: "Suite Bergamasque", Duration: 5 * time.Minute, Genre: "classical", Mood: "dreamy"},
		{ID: "21", Title: "Lose Yourself", Artist: "Eminem", Album: "8 Mile", Duration: 5*time.Minute + 26*time.Second, Genre: "hiphop", Mood: "intense"},
		{ID: "22", Title: "Stayin' Alive", Artist: "Bee Gees", Album: "Saturday Night Fever", Duration: 4*time.Minute + 45*time.Second, Genre: "disco", Mood: "groovy"},
	}
}
