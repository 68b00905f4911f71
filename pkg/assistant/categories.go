package assistant

// Library is one recommendation returned to the caller.
type Library struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Summary string `json:"summary"`
}

// categoryOrder fixes the tie-break order when two categories score the
// same against a query.
var categoryOrder = []string{
	"ai", "data_science", "web", "database",
	"networking", "security", "testing", "ui",
}

// categoryKeywords maps each category to the phrases that signal it in a
// query. Matching is plain lowercase substring containment.
var categoryKeywords = map[string][]string{
	"ai":           {"machine learning", "deep learning", "neural networks", "nlp", "computer vision", "ai"},
	"data_science": {"data analysis", "statistics", "visualization", "data processing", "dataframes"},
	"web":          {"web framework", "http", "api", "rest", "graphql", "async"},
	"database":     {"database", "sql", "nosql", "orm", "data storage"},
	"networking":   {"networking", "sockets", "protocol", "requests"},
	"security":     {"security", "authentication", "encryption", "hashing", "login", "user management"},
	"testing":      {"testing", "test framework", "mocking", "assertions", "coverage"},
	"ui":           {"ui", "gui", "interface", "widgets", "dashboard"},
}

// curated lists well-known libraries per category. The networking
// category intentionally has no curated entries; queries landing there
// are filled in from the package index instead.
var curated = map[string][]Library{
	"ai": {
		{Name: "tensorflow", Summary: "Open source machine learning framework"},
		{Name: "pytorch", Summary: "Deep learning framework with strong GPU acceleration"},
		{Name: "scikit-learn", Summary: "Simple and efficient tools for machine learning and data analysis"},
		{Name: "huggingface-transformers", Summary: "State-of-the-art Natural Language Processing for PyTorch and TensorFlow"},
		{Name: "keras", Summary: "Deep learning API running on top of TensorFlow"},
		{Name: "spacy", Summary: "Industrial-strength Natural Language Processing in Python"},
		{Name: "nltk", Summary: "Natural Language Toolkit"},
		{Name: "fastai", Summary: "Simplifies training fast and accurate neural nets"},
		{Name: "opencv-python", Summary: "Computer vision and machine learning software library"},
		{Name: "gensim", Summary: "Topic modeling and document similarity toolkit"},
	},
	"data_science": {
		{Name: "pandas", Summary: "Powerful data structures for data analysis, time series, and statistics"},
		{Name: "numpy", Summary: "Fundamental package for array computing in Python"},
		{Name: "matplotlib", Summary: "Comprehensive library for creating static, animated, and interactive visualizations"},
		{Name: "seaborn", Summary: "Statistical data visualization based on matplotlib"},
		{Name: "scipy", Summary: "Fundamental algorithms for scientific computing in Python"},
		{Name: "plotly", Summary: "Interactive graphing library for Python"},
		{Name: "statsmodels", Summary: "Statistical models and tests"},
		{Name: "dask", Summary: "Parallel computing library that scales Python"},
	},
	"web": {
		{Name: "flask", Summary: "Lightweight WSGI web application framework"},
		{Name: "django", Summary: "High-level Python Web framework that encourages rapid development"},
		{Name: "fastapi", Summary: "Modern, fast web framework for building APIs with Python 3.6+"},
		{Name: "tornado", Summary: "Python web framework and asynchronous networking library"},
		{Name: "bottle", Summary: "Fast and simple WSGI-micro framework for Python"},
		{Name: "pyramid", Summary: "Small, fast, down-to-earth Python web framework"},
		{Name: "starlette", Summary: "Lightweight ASGI framework for building async web services"},
	},
	"database": {
		{Name: "sqlalchemy", Summary: "Database Abstraction Library for Python"},
		{Name: "pymongo", Summary: "Python driver for MongoDB"},
		{Name: "psycopg2", Summary: "PostgreSQL database adapter for Python"},
		{Name: "peewee", Summary: "Small, expressive ORM for Python"},
		{Name: "redis-py", Summary: "Redis Python Client"},
		{Name: "pymysql", Summary: "Pure Python MySQL Client"},
		{Name: "elasticsearch-py", Summary: "Official low-level client for Elasticsearch"},
	},
	"security": {
		{Name: "authlib", Summary: "The ultimate Python library in building OAuth and OpenID Connect servers"},
		{Name: "passlib", Summary: "Comprehensive password hashing framework"},
		{Name: "pyjwt", Summary: "JSON Web Token implementation in Python"},
		{Name: "cryptography", Summary: "Cryptographic recipes and primitives for Python"},
		{Name: "flask-login", Summary: "User session management for Flask"},
		{Name: "django-allauth", Summary: "Integrated set of Django applications addressing authentication, registration, account management"},
		{Name: "bcrypt", Summary: "Modern password hashing for your software and your servers"},
	},
	"testing": {
		{Name: "pytest", Summary: "Simple powerful testing with Python"},
		{Name: "unittest", Summary: "Built-in unit testing framework"},
		{Name: "nose2", Summary: "Next generation of nicer testing for Python"},
		{Name: "mock", Summary: "Rolling backport of unittest.mock for Python"},
		{Name: "hypothesis", Summary: "Property-based testing library for Python"},
	},
	"ui": {
		{Name: "tkinter", Summary: "Standard GUI library for Python"},
		{Name: "pyqt5", Summary: "Python bindings for the Qt application framework"},
		{Name: "pyside2", Summary: "Python bindings for the Qt application framework (official)"},
		{Name: "wxpython", Summary: "Cross-platform GUI toolkit for Python"},
		{Name: "dash", Summary: "Analytical Web Apps for Python, R, Julia, and more"},
		{Name: "streamlit", Summary: "The fastest way to build and share data apps"},
		{Name: "gradio", Summary: "Create UIs for your machine learning model in Python in 3 minutes"},
	},
}
