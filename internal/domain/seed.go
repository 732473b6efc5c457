package domain

type seedQuestion struct {
	prompt     string
	options    [OptionCount]string
	correct    int
	difficulty string
}

var seedQuestions = [Levels]seedQuestion{
	{"What is the capital of India?", [4]string{"Mumbai", "New Delhi", "Kolkata", "Chennai"}, 1, "easy"},
	{"Who wrote the play 'Hamlet'?", [4]string{"Charles Dickens", "William Shakespeare", "Leo Tolstoy", "Mark Twain"}, 1, "easy"},
	{"H2O is the chemical formula for what?", [4]string{"Salt", "Carbon dioxide", "Water", "Oxygen"}, 2, "easy"},
	{"Which planet is known as the Red Planet?", [4]string{"Earth", "Venus", "Mars", "Jupiter"}, 2, "easy"},
	{"Who was the first Prime Minister of India?", [4]string{"Mahatma Gandhi", "Jawaharlal Nehru", "Sardar Patel", "Subhas Chandra Bose"}, 1, "easy"},
	{"In computing, CPU stands for?", [4]string{"Central Processing Unit", "Control Program Unit", "Computer Processing Unit", "Central Program Unit"}, 0, "medium"},
	{"The river Ganga flows into which body of water?", [4]string{"Bay of Bengal", "Arabian Sea", "Indian Ocean", "Yellow Sea"}, 0, "medium"},
	{"Who discovered penicillin?", [4]string{"Marie Curie", "Alexander Fleming", "Louis Pasteur", "Gregor Mendel"}, 1, "medium"},
	{"Which country hosted the 2016 Summer Olympics?", [4]string{"China", "Brazil", "UK", "Russia"}, 1, "medium"},
	{"Who is the author of the autobiography 'Wings of Fire'?", [4]string{"A. P. J. Abdul Kalam", "Vikram Sarabhai", "C. V. Raman", "S. Radhakrishnan"}, 0, "medium"},
	{"Which artist painted the famous work 'Guernica'?", [4]string{"Pablo Picasso", "Vincent van Gogh", "Claude Monet", "Leonardo da Vinci"}, 0, "hard"},
	{"Which ancient philosopher wrote 'The Republic'?", [4]string{"Aristotle", "Plato", "Socrates", "Epicurus"}, 1, "hard"},
	{"What is the Big-O time complexity of binary search?", [4]string{"O(n)", "O(log n)", "O(n log n)", "O(1)"}, 1, "hard"},
	{"What is the highest mountain in the world (above sea level)?", [4]string{"K2", "Mount Everest", "Kangchenjunga", "Lhotse"}, 1, "hard"},
	{"Which treaty officially ended World War I?", [4]string{"Treaty of Paris", "Treaty of Versailles", "Treaty of Tordesillas", "Treaty of Utrecht"}, 1, "hard"},
}

// SeedQuestions returns the fixed question set. Each prize is taken from the ladder
// at the question's position.
func SeedQuestions() []Question {
	out := make([]Question, 0, Levels)
	for i, sq := range seedQuestions {
		out = append(out, Question{
			ID:         i + 1,
			Prompt:     sq.prompt,
			Options:    append([]string(nil), sq.options[:]...),
			Correct:    sq.correct,
			Difficulty: sq.difficulty,
			Prize:      prizeLadder[i],
		})
	}
	return out
}
