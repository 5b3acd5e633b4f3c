// Command kalaghar runs the gallery API and its maintenance tasks:
//
//	kalaghar serve         # start server
//	kalaghar migrate       # create tables / indexes
//	kalaghar seed          # load the starter catalogue
//	kalaghar route:list    # list API routes
//	kalaghar user:create --name root --password … --role Admin
package main
