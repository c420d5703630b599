package catalog

// DefaultEntries is the built-in catalog loaded when no seed source is configured.
func DefaultEntries() []Entry {
	return []Entry{
		{Class: "6", Subject: "Mathematics", Year: "2023", Path: "class6/math/2023.pdf"},
		{Class: "6", Subject: "Mathematics", Year: "2022", Path: "class6/math/2022.pdf"},
		{Class: "6", Subject: "Science", Year: "2023", Path: "class6/science/2023.pdf"},
		{Class: "6", Subject: "Science", Year: "2022", Path: "class6/science/2022.pdf"},
		{Class: "6", Subject: "English", Year: "2023", Path: "class6/english/2023.pdf"},
		{Class: "6", Subject: "English", Year: "2022", Path: "class6/english/2022.pdf"},
		{Class: "6", Subject: "Hindi", Year: "2023", Path: "class6/hindi/2023.pdf"},
		{Class: "6", Subject: "Hindi", Year: "2022", Path: "class6/hindi/2022.pdf"},
		{Class: "7", Subject: "Mathematics", Year: "2023", Path: "class7/math/2023.pdf"},
		{Class: "7", Subject: "Mathematics", Year: "2022", Path: "class7/math/2022.pdf"},
		{Class: "7", Subject: "Science", Year: "2023", Path: "class7/science/2023.pdf"},
		{Class: "7", Subject: "Science", Year: "2022", Path: "class7/science/2022.pdf"},
		{Class: "7", Subject: "English", Year: "2023", Path: "class7/english/2023.pdf"},
		{Class: "7", Subject: "English", Year: "2022", Path: "class7/english/2022.pdf"},
		{Class: "7", Subject: "Hindi", Year: "2023", Path: "class7/hindi/2023.pdf"},
		{Class: "7", Subject: "Hindi", Year: "2022", Path: "class7/hindi/2022.pdf"},
		{Class: "8", Subject: "Mathematics", Year: "2023", Path: "class8/math/2023.pdf"},
		{Class: "8", Subject: "Mathematics", Year: "2022", Path: "class8/math/2022.pdf"},
		{Class: "8", Subject: "Science", Year: "2023", Path: "class8/science/2023.pdf"},
		{Class: "8", Subject: "Science", Year: "2022", Path: "class8/science/2022.pdf"},
		{Class: "8", Subject: "English", Year: "2023", Path: "class8/english/2023.pdf"},
		{Class: "8", Subject: "English", Year: "2022", Path: "class8/english/2022.pdf"},
		{Class: "8", Subject: "Hindi", Year: "2023", Path: "class8/hindi/2023.pdf"},
		{Class: "8", Subject: "Hindi", Year: "2022", Path: "class8/hindi/2022.pdf"},
		{Class: "9", Subject: "Mathematics", Year: "2023", Path: "class9/math/2023.pdf"},
		{Class: "9", Subject: "Mathematics", Year: "2022", Path: "class9/math/2022.pdf"},
		{Class: "9", Subject: "Science", Year: "2023", Path: "class9/science/2023.pdf"},
		{Class: "9", Subject: "Science", Year: "2022", Path: "class9/science/2022.pdf"},
		{Class: "9", Subject: "English", Year: "2023", Path: "class9/english/2023.pdf"},
		{Class: "9", Subject: "English", Year: "2022", Path: "class9/english/2022.pdf"},
		{Class: "9", Subject: "Hindi", Year: "2023", Path: "class9/hindi/2023.pdf"},
		{Class: "9", Subject: "Hindi", Year: "2022", Path: "class9/hindi/2022.pdf"},
		{Class: "9", Subject: "Social Science", Year: "2023", Path: "class9/social/2023.pdf"},
		{Class: "9", Subject: "Social Science", Year: "2022", Path: "class9/social/2022.pdf"},
		{Class: "10", Subject: "Mathematics", Year: "2023", Path: "class10/math/2023.pdf"},
		{Class: "10", Subject: "Mathematics", Year: "2022", Path: "class10/math/2022.pdf"},
		{Class: "10", Subject: "Science", Year: "2023", Path: "class10/science/2023.pdf"},
		{Class: "10", Subject: "Science", Year: "2022", Path: "class10/science/2022.pdf"},
		{Class: "10", Subject: "English", Year: "2023", Path: "class10/english/2023.pdf"},
		{Class: "10", Subject: "English", Year: "2022", Path: "class10/english/2022.pdf"},
		{Class: "10", Subject: "Hindi", Year: "2023", Path: "class10/hindi/2023.pdf"},
		{Class: "10", Subject: "Hindi", Year: "2022", Path: "class10/hindi/2022.pdf"},
		{Class: "10", Subject: "Social Science", Year: "2023", Path: "class10/social/2023.pdf"},
		{Class: "10", Subject: "Social Science", Year: "2022", Path: "class10/social/2022.pdf"},
		{Class: "11", Subject: "Mathematics", Year: "2023", Path: "class11/math/2023.pdf"},
		{Class: "11", Subject: "Mathematics", Year: "2022", Path: "class11/math/2022.pdf"},
		{Class: "11", Subject: "Physics", Year: "2023", Path: "class11/physics/2023.pdf"},
		{Class: "11", Subject: "Physics", Year: "2022", Path: "class11/physics/2022.pdf"},
		{Class: "11", Subject: "Chemistry", Year: "2023", Path: "class11/chemistry/2023.pdf"},
		{Class: "11", Subject: "Chemistry", Year: "2022", Path: "class11/chemistry/2022.pdf"},
		{Class: "11", Subject: "Biology", Year: "2023", Path: "class11/biology/2023.pdf"},
		{Class: "11", Subject: "Biology", Year: "2022", Path: "class11/biology/2022.pdf"},
		{Class: "11", Subject: "English", Year: "2023", Path: "class11/english/2023.pdf"},
		{Class: "11", Subject: "English", Year: "2022", Path: "class11/english/2022.pdf"},
		{Class: "11", Subject: "Economics", Year: "2023", Path: "class11/economics/2023.pdf"},
		{Class: "11", Subject: "Economics", Year: "2022", Path: "class11/economics/2022.pdf"},
		{Class: "12", Subject: "Mathematics", Year: "2023", Path: "class12/math/2023.pdf"},
		{Class: "12", Subject: "Mathematics", Year: "2022", Path: "class12/math/2022.pdf"},
		{Class: "12", Subject: "Physics", Year: "2023", Path: "class12/physics/2023.pdf"},
		{Class: "12", Subject: "Physics", Year: "2022", Path: "class12/physics/2022.pdf"},
		{Class: "12", Subject: "Chemistry", Year: "2023", Path: "class12/chemistry/2023.pdf"},
		{Class: "12", Subject: "Chemistry", Year: "2022", Path: "class12/chemistry/2022.pdf"},
		{Class: "12", Subject: "Biology", Year: "2023", Path: "class12/biology/2023.pdf"},
		{Class: "12", Subject: "Biology", Year: "2022", Path: "class12/biology/2022.pdf"},
		{Class: "12", Subject: "English", Year: "2023", Path: "class12/english/2023.pdf"},
		{Class: "12", Subject: "English", Year: "2022", Path: "class12/english/2022.pdf"},
		{Class: "12", Subject: "Economics", Year: "2023", Path: "class12/economics/2023.pdf"},
		{Class: "12", Subject: "Economics", Year: "2022", Path: "class12/economics/2022.pdf"},
	}
}
