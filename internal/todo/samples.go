package todo

// SampleTasks returns the demonstration tasks. The second one starts
// completed so every part of the view has something to show.
func SampleTasks() []SeedTask {
	return []SeedTask{
		{Text: "Buy groceries"},
		{Text: "Visit the doctor", Completed: true},
		{Text: "Finish the project report"},
		{Text: "Exercise for 30 minutes"},
	}
}

// SampleSeedFile wraps SampleTasks in a seed file document.
func SampleSeedFile() *SeedFile {
	return &SeedFile{
		SchemaVersion: SeedSchemaVersion,
		Tasks:         SampleTasks(),
	}
}
