package persona

// Speech patterns layered onto answers so they don't read machine-perfect.

var uncertaintyPhrases = []string{
	"I'm not entirely sure, but I think",
	"If I had to guess, I'd say",
	"From what I remember",
	"I believe",
	"As far as I know",
}

var hedgingPhrases = []string{
	"probably",
	"likely",
	"I suppose",
	"perhaps",
	"it seems to me",
	"in my opinion",
	"I'd say",
}

var noncommittalPhrases = []string{
	"I'm not sure about this",
	"I don't have a strong opinion",
	"I'd need to think about this more",
	"Not really sure",
}
